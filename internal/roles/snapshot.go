package roles

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"resume-reviewer/internal/shared/storage/object"
)

const (
	indexObject = "roles.index"
	metaObject  = "roles.meta.json"

	indexMagic   = "RIDX"
	indexVersion = uint32(1)
)

// ErrCorruptSnapshot reports a snapshot that cannot be trusted.
var ErrCorruptSnapshot = errors.New("corrupt role snapshot")

type snapshotMeta struct {
	Embedder  string `json:"embedder"`
	Dimension int    `json:"dimension"`
	Roles     []Role `json:"roles"`
}

// encodeIndex writes the magic, version, dimension and count headers
// followed by every vector as little-endian float32.
func encodeIndex(records []Record, dim int) []byte {
	var buf bytes.Buffer
	buf.Grow(16 + len(records)*dim*4)
	buf.WriteString(indexMagic)
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], indexVersion)
	binary.LittleEndian.PutUint32(header[4:8], uint32(dim))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(records)))
	buf.Write(header)

	word := make([]byte, 4)
	for _, rec := range records {
		for _, v := range rec.Vector {
			binary.LittleEndian.PutUint32(word, math.Float32bits(v))
			buf.Write(word)
		}
	}
	return buf.Bytes()
}

// decodeIndex reads vectors of dimension wantDim. Sizes are validated
// against the body length before anything is allocated.
func decodeIndex(data []byte, wantDim int) ([][]float32, error) {
	if len(data) < 16 || string(data[:4]) != indexMagic {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptSnapshot)
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != indexVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, v)
	}
	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))
	body := data[16:]
	if wantDim <= 0 || dim != wantDim {
		return nil, fmt.Errorf("%w: dimension %d, want %d", ErrCorruptSnapshot, dim, wantDim)
	}
	rowBytes := dim * 4
	if len(body)%rowBytes != 0 || count != len(body)/rowBytes {
		return nil, fmt.Errorf("%w: header says %d vectors, body holds %d bytes", ErrCorruptSnapshot, count, len(body))
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		vec := make([]float32, dim)
		for j := range vec {
			off := (i*dim + j) * 4
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(body[off : off+4]))
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func saveSnapshot(ctx context.Context, store object.ObjectStore, prefix string, embedder Embedder, records []Record) error {
	meta := snapshotMeta{
		Embedder:  embedder.Name(),
		Dimension: embedder.Dimension(),
		Roles:     make([]Role, len(records)),
	}
	for i, rec := range records {
		meta.Roles[i] = rec.Role
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal role meta: %w", err)
	}

	if _, err := store.SaveWithKey(ctx, prefix+indexObject, "application/octet-stream", bytes.NewReader(encodeIndex(records, embedder.Dimension()))); err != nil {
		return fmt.Errorf("save role index: %w", err)
	}
	if _, err := store.SaveWithKey(ctx, prefix+metaObject, "application/json", bytes.NewReader(metaJSON)); err != nil {
		return fmt.Errorf("save role meta: %w", err)
	}
	return nil
}

func loadSnapshot(ctx context.Context, store object.ObjectStore, prefix string, embedder Embedder) ([]Record, error) {
	indexData, err := readObject(ctx, store, prefix+indexObject)
	if err != nil {
		return nil, err
	}
	metaData, err := readObject(ctx, store, prefix+metaObject)
	if err != nil {
		return nil, err
	}

	var meta snapshotMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("%w: meta: %v", ErrCorruptSnapshot, err)
	}
	switch {
	case meta.Embedder != embedder.Name():
		return nil, fmt.Errorf("%w: built with embedder %q, have %q", ErrCorruptSnapshot, meta.Embedder, embedder.Name())
	case meta.Dimension != embedder.Dimension():
		return nil, fmt.Errorf("%w: meta dimension %d, want %d", ErrCorruptSnapshot, meta.Dimension, embedder.Dimension())
	}
	vectors, err := decodeIndex(indexData, embedder.Dimension())
	if err != nil {
		return nil, err
	}
	if len(meta.Roles) != len(vectors) {
		return nil, fmt.Errorf("%w: %d roles for %d vectors", ErrCorruptSnapshot, len(meta.Roles), len(vectors))
	}

	records := make([]Record, len(vectors))
	for i := range vectors {
		records[i] = Record{Role: meta.Roles[i], Vector: vectors[i]}
	}
	return records, nil
}

func readObject(ctx context.Context, store object.ObjectStore, key string) ([]byte, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
