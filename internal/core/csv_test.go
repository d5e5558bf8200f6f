package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{name: "comma", content: "a,b,c\n1,2,3", want: ','},
		{name: "semicolon", content: "a;b;c\n1;2;3", want: ';'},
		{name: "tab", content: "a\tb\tc\n1\t2\t3", want: '\t'},
		{name: "pipe", content: "a|b|c\n1|2|3", want: '|'},
		{name: "empty input", content: "", want: ','},
		{name: "no candidates", content: "abc\ndef", want: ','},
		{name: "tie with comma", content: "a,b;c", want: ','},
		{name: "tie without comma", content: "a;b|c", want: ','},
		{name: "tie between semicolon and tab", content: "a;b\tc", want: ','},
		{name: "tie below top count ignored", content: "a;b;c|d\te", want: ';'},
		{name: "quoted commas ignored", content: `"1,2,3";"4,5,6";x`, want: ';'},
		{name: "quoted semicolons ignored", content: `"x;y;z",a,b`, want: ','},
		{name: "bom stripped", content: "\ufeffa;b;c", want: ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(DetectDelimiter(tt.content)))
		})
	}
}

func TestDetectDelimiter_SamplesFirstFiveLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("a,b\n")
	}
	for i := 0; i < 50; i++ {
		b.WriteString("a;b;c;d;e\n")
	}
	assert.Equal(t, ',', DetectDelimiter(b.String()))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		delim rune
		want  []string
	}{
		{name: "simple", line: "a,b,c", delim: ',', want: []string{"a", "b", "c"}},
		{name: "quoted delimiter", line: `a,"b,c",d`, delim: ',', want: []string{"a", "b,c", "d"}},
		{name: "escaped quote", line: `a,"b""c",d`, delim: ',', want: []string{"a", `b"c`, "d"}},
		{name: "fields trimmed", line: " a , b ", delim: ',', want: []string{"a", "b"}},
		{name: "trailing empty field", line: "a,", delim: ',', want: []string{"a", ""}},
		{name: "empty line", line: "", delim: ',', want: []string{""}},
		{name: "semicolon", line: `x;"1;2";z`, delim: ';', want: []string{"x", "1;2", "z"}},
		{name: "tab", line: "x\ty", delim: '\t', want: []string{"x", "y"}},
		{name: "quoted empty", line: `"",b`, delim: ',', want: []string{"", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line, tt.delim))
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("bom and crlf", func(t *testing.T) {
		got := ParseCSV("\ufeffDate,Description,Amount\r\n01/01/2024,Coffee,-4.50\r\n", DefaultParseOptions())

		assert.Equal(t, []string{"Date", "Description", "Amount"}, got.Headers)
		assert.Equal(t, [][]string{{"01/01/2024", "Coffee", "-4.50"}}, got.Rows)
		assert.Equal(t, ',', got.Delimiter)
		assert.Equal(t, 1, got.RowCount)
		assert.False(t, got.Truncated)
	})

	t.Run("semicolon detected", func(t *testing.T) {
		got := ParseCSV("Datum;Omschrijving;Bedrag\n15-01-2024;Albert Heijn;-12,50\n", DefaultParseOptions())

		assert.Equal(t, ';', got.Delimiter)
		require.Len(t, got.Rows, 1)
		assert.Equal(t, "-12,50", got.Rows[0][2])
	})

	t.Run("short rows dropped", func(t *testing.T) {
		content := "a,b,c,d\n1,2,3,4\nx\n5,6\n"
		got := ParseCSV(content, DefaultParseOptions())

		assert.Equal(t, [][]string{{"1", "2", "3", "4"}, {"5", "6"}}, got.Rows)
	})

	t.Run("ragged long rows kept", func(t *testing.T) {
		got := ParseCSV("a,b\n1,2,3\n", DefaultParseOptions())
		assert.Equal(t, [][]string{{"1", "2", "3"}}, got.Rows)
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		got := ParseCSV("\n\na,b\n\n1,2\n   \n3,4\n", DefaultParseOptions())

		assert.Equal(t, []string{"a", "b"}, got.Headers)
		assert.Equal(t, 2, got.RowCount)
	})

	t.Run("truncated at max rows", func(t *testing.T) {
		opts := DefaultParseOptions()
		opts.MaxRows = 2
		got := ParseCSV("a,b\n1,2\n3,4\n5,6\n", opts)

		assert.Equal(t, 2, got.RowCount)
		assert.True(t, got.Truncated)
	})

	t.Run("exactly max rows not truncated", func(t *testing.T) {
		opts := DefaultParseOptions()
		opts.MaxRows = 2
		got := ParseCSV("a,b\n1,2\n3,4\n", opts)

		assert.Equal(t, 2, got.RowCount)
		assert.False(t, got.Truncated)
	})

	t.Run("explicit delimiter", func(t *testing.T) {
		opts := DefaultParseOptions()
		opts.Delimiter = '|'
		got := ParseCSV("a|b,c\n1|2,3\n", opts)

		assert.Equal(t, []string{"a", "b,c"}, got.Headers)
	})

	t.Run("no headers", func(t *testing.T) {
		opts := DefaultParseOptions()
		opts.HasHeaders = false
		got := ParseCSV("1,2\n3,4\n", opts)

		assert.Empty(t, got.Headers)
		assert.Equal(t, 2, got.RowCount)
	})

	t.Run("empty content", func(t *testing.T) {
		got := ParseCSV("", DefaultParseOptions())

		assert.NotNil(t, got.Headers)
		assert.NotNil(t, got.Rows)
		assert.Equal(t, 0, got.RowCount)
	})
}
