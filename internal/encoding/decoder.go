package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeLine turns raw bytes read off the pipe into a trimmed, valid UTF-8
// string. Writers are shell scripts; anything that is not UTF-8 is read
// as MacRoman, which is what macOS tools fall back to.
func DecodeLine(input []byte) (string, error) {
	trimmed := bytes.TrimSpace(input)

	if utf8.Valid(trimmed) {
		return string(trimmed), nil
	}

	reader := charmap.Macintosh.NewDecoder().Reader(bytes.NewReader(trimmed))
	output, err := io.ReadAll(reader)

	if err != nil {
		return "", fmt.Errorf("encoding: could not decode line: %w", err)
	}

	return strings.ToValidUTF8(string(output), ""), nil
}
