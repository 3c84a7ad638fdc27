package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

const sniffLen = 512

// SniffContentType reads up to 512 bytes to detect the MIME type and returns a
// reader that replays them ahead of the rest of r.
func SniffContentType(r io.Reader) (io.Reader, string, error) {
	var sniff [sniffLen]byte
	n, err := io.ReadFull(r, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("read sniff: %w", err)
	}
	head := append([]byte(nil), sniff[:n]...)
	return io.MultiReader(bytes.NewReader(head), r), http.DetectContentType(head), nil
}
