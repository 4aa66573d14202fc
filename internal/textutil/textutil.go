package textutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the character set a file was decoded from.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns data as text. Valid UTF-8 (with an optional BOM) is used
// as is; anything else is decoded as Windows-1252, which older catalog
// files were commonly saved in.
func Decode(data []byte) (string, Encoding, error) {
	if trimmed := bytes.TrimPrefix(data, utf8BOM); utf8.Valid(trimmed) {
		return string(trimmed), EncodingUTF8, nil
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("decode windows-1252: %w", err)
	}
	return string(out), EncodingWindows1252, nil
}

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to at most maxLen bytes, appending "..." if
// truncated. The cut never splits a UTF-8 sequence.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
