package documents

import (
	"time"

	"resume-reviewer/internal/resume"
)

type documentResponse struct {
	DocumentID string          `json:"documentId"`
	FileName   string          `json:"fileName"`
	MimeType   string          `json:"mimeType"`
	SizeBytes  int64           `json:"sizeBytes"`
	UploadedAt time.Time       `json:"uploadedAt"`
	Data       resume.Document `json:"data"`
}

type documentSummary struct {
	DocumentID string    `json:"documentId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) documentResponse {
	return documentResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.CreatedAt,
		Data:       doc.Parsed,
	}
}

func toSummary(doc Document) documentSummary {
	return documentSummary{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.CreatedAt,
	}
}
