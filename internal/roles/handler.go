package roles

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-reviewer/internal/shared/server/respond"
)

const (
	defaultSearchK = 3
	maxSearchK     = 10
)

// Handler exposes the role corpus over HTTP.
type Handler struct {
	Retriever *Retriever
}

// NewHandler constructs a Handler.
func NewHandler(r *Retriever) *Handler {
	return &Handler{Retriever: r}
}

// RegisterRoutes attaches role routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.list)
	rg.GET("/roles/search", h.search)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, MergeTitles(CommonTitles, h.Retriever.Titles()))
}

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "q is required", nil)
		return
	}

	k := defaultSearchK
	if v := c.Query("k"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "k must be a positive integer", nil)
			return
		}
		k = min(parsed, maxSearchK)
	}

	respond.OK(c, gin.H{
		"query":   query,
		"matches": h.Retriever.SearchSimilarRoles(c.Request.Context(), query, k),
	})
}
