package core

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewBOMSkippingReader returns a reader over r without a leading UTF-8
// byte-order mark. Spreadsheet exports on Windows commonly add one.
func NewBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// ReadContent reads an uploaded phrase file into a string.
//
// The BOM is skipped and invalid UTF-8 sequences are replaced with U+FFFD.
// Files larger than limit bytes fail with ErrContentTooLarge without being
// read past the limit.
func ReadContent(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(NewBOMSkippingReader(r), limit+1))
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrContentTooLarge, limit)
	}
	return SanitizeUTF8(string(data)), nil
}

// SanitizeUTF8 replaces invalid UTF-8 sequences with U+FFFD.
func SanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
