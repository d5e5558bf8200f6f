package core

// decode.go turns uploaded bytes into parseable text and runs the cheap sniff
// checks callers perform before delimiter detection.
//
// Bank exports arrive in whatever encoding the bank's backend produced:
//
//   - UTF-8 with a BOM (Excel "CSV UTF-8")
//   - Plain UTF-8
//   - Windows-1252, still common for European exports (é, £, €)
//
// DecodeContent strips the BOM and falls back to Windows-1252 when the data is
// not valid UTF-8, so descriptions keep their accented characters instead of
// being mangled into replacement runes.

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// MaxUploadSize is the default maximum statement size accepted by CheckUpload (5MB).
var MaxUploadSize int64 = 5 * 1024 * 1024

var (
	ErrEmptyFile      = errors.New("empty file")
	ErrFileTooLarge   = errors.New("file too large")
	ErrNotEnoughLines = errors.New("not enough lines: need a header and at least one data row")
	ErrNoDelimiter    = errors.New("no delimiter found in first line")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeContent converts raw file bytes to a string suitable for ParseCSV.
func DecodeContent(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)

	if isAllASCII(data) || utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "?")
	}
	return string(decoded)
}

// isAllASCII returns true if all bytes are ASCII (< 128).
func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// CheckUpload runs the pre-parse sniff checks on decoded content: the file must
// fit within maxSize bytes, contain at least two non-blank lines, and have a
// known delimiter character on its first line. A maxSize <= 0 uses MaxUploadSize.
func CheckUpload(content string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if int64(len(content)) > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(content), maxSize)
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyFile
	}

	var first string
	nonBlank := 0
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if nonBlank == 0 {
			first = line
		}
		nonBlank++
		if nonBlank >= 2 {
			break
		}
	}
	if nonBlank < 2 {
		return ErrNotEnoughLines
	}

	if !strings.ContainsAny(first, string(delimiterCandidates)) {
		return ErrNoDelimiter
	}
	return nil
}
