package documents

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/extract"
	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/shared/storage/object"
	"resume-reviewer/internal/shared/storage/object/local"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555 123 4567 | github.com/janedoe

EXPERIENCE
Backend engineer building Go services on AWS.

SKILLS
Go, Python, SQL, Docker

EDUCATION
BSc Computer Science
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Store:  local.New(t.TempDir()),
		Repo:   NewMemoryRepo(),
		Parser: resume.NewParser(extract.New()),
	}
}

func TestUploadParsesAndStores(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "jane.txt", doc.FileName)
	assert.Equal(t, int64(len(sampleResume)), doc.SizeBytes)
	assert.True(t, strings.HasPrefix(doc.MimeType, "text/plain"))
	assert.Equal(t, "Go, Python, SQL, Docker", doc.Parsed.Sections.Get(resume.SectionSkills))
	require.NotNil(t, doc.Parsed.Contact.Email)
	assert.Equal(t, "jane.doe@example.com", *doc.Parsed.Contact.Email)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	stored, err := svc.Store.Open(ctx, doc.StorageKey)
	require.NoError(t, err)
	stored.Close()
}

func TestUploadValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, " ", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, "empty.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, "big.txt", strings.NewReader(strings.Repeat("a", MaxUploadSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadExtractionFailureIsNotStored(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "photo.gif", strings.NewReader("GIF89a....."))
	require.Error(t, err)
	assert.ErrorIs(t, err, resume.ErrExtraction)
	assert.ErrorIs(t, err, extract.ErrUnsupportedType)

	docs, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(context.Background(), "6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, Document{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	docs, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)

	docs, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)

	docs, err = repo.List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryRepoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewMemoryRepo().Create(ctx, Document{ID: "x"})
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(context.Context, Document) error {
	return errors.New("insert failed")
}

func TestUploadRemovesObjectWhenRecordFails(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		Store:  local.New(dir),
		Repo:   failingRepo{NewMemoryRepo()},
		Parser: resume.NewParser(extract.New()),
	}

	_, err := svc.Upload(context.Background(), "jane.txt", strings.NewReader(sampleResume))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save document")

	var files []string
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.Type().IsRegular() {
			files = append(files, path)
		}
		return err
	}))
	assert.Empty(t, files)
}

func TestReparseRefreshesParsedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume))
	require.NoError(t, err)
	require.NoError(t, svc.Repo.UpdateParsed(ctx, doc.ID, resume.Parse([]string{"stale"})))

	stale, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, stale.Parsed.Sections.Get(resume.SectionSkills))

	got, err := svc.Reparse(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go, Python, SQL, Docker", got.Parsed.Sections.Get(resume.SectionSkills))

	stored, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestReparseErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Reparse(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reparse(ctx, "6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10")
	assert.ErrorIs(t, err, ErrNotFound)

	doc, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume))
	require.NoError(t, err)
	require.NoError(t, svc.Store.Delete(ctx, doc.StorageKey))

	_, err = svc.Reparse(ctx, doc.ID)
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestMemoryRepoUpdateParsedUnknownID(t *testing.T) {
	err := NewMemoryRepo().UpdateParsed(context.Background(), "missing", resume.Parse(nil))
	assert.ErrorIs(t, err, ErrNotFound)
}
