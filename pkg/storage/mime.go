package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// http.DetectContentType looks at no more than 512 bytes.
const sniffLen = 512

// imageExtensions maps the accepted image MIME types to extensions.
// Anything outside this set is rejected at upload.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// detectImageType sniffs the reader and returns the MIME type plus a
// reader replaying the consumed bytes. The type is normalized without
// parameters.
func detectImageType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]

	mime := http.DetectContentType(head)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	return mime, io.MultiReader(bytes.NewReader(head), r), nil
}
