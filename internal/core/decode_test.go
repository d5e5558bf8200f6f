package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContent(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "ascii", input: []byte("Date,Amount"), want: "Date,Amount"},
		{name: "bom stripped", input: []byte("\xEF\xBB\xBFDate,Amount"), want: "Date,Amount"},
		{name: "utf8 preserved", input: []byte("Café,€5"), want: "Café,€5"},
		{name: "windows-1252 e acute", input: []byte{'C', 'a', 'f', 0xE9}, want: "Café"},
		{name: "windows-1252 euro", input: []byte{0x80, '5'}, want: "€5"},
		{name: "windows-1252 pound", input: []byte{0xA3, '7'}, want: "£7"},
		{name: "empty", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeContent(tt.input))
		})
	}
}

func TestCheckUpload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxSize int64
		wantErr error
	}{
		{name: "valid", content: "Date,Amount\n01/01/2024,5\n", wantErr: nil},
		{name: "blank lines between", content: "Date;Amount\n\n01/01/2024;5", wantErr: nil},
		{name: "empty", content: "", wantErr: ErrEmptyFile},
		{name: "whitespace only", content: "  \n\t\n", wantErr: ErrEmptyFile},
		{name: "header only", content: "Date,Amount\n", wantErr: ErrNotEnoughLines},
		{name: "no delimiter", content: "hello\nworld\n", wantErr: ErrNoDelimiter},
		{name: "too large", content: strings.Repeat("a,b\n", 10), maxSize: 20, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(tt.content, tt.maxSize)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
