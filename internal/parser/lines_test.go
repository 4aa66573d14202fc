package parser

import (
	"slices"
	"testing"
)

func TestLogicalLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single line", `"Sol"`, []string{`"Sol"`}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"crlf and cr", "a\r\nb\rc", []string{"a", "b", "c"}},
		{"quote spans lines", "a\n\"b\nc\"\nd", []string{"a", "\"b\nc\"", "d"}},
		{"quote spans three lines", "\"x\ny\nz\" w", []string{"\"x\ny\nz\" w"}},
		{"unterminated at eof", "\"x\ny", []string{"\"x\ny"}},
		{"quote in comment opens string", "# \"\nnext\"", []string{"# \"\nnext\""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogicalLines(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LogicalLines(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"  \"Sol\"  ", `"Sol"`},
		{"70890 # Proxima Cen", "70890"},
		{"# whole line", ""},
		{`"Name#1" "Parent"`, `"Name#1" "Parent"`},
		{`"Name#1" # "Parent"`, `"Name#1"`},
		{"\t\"A\" \"B\" {\t# open", `"A" "B" {`},
	}

	for _, tt := range tests {
		if got := StripComment(tt.line); got != tt.want {
			t.Errorf("StripComment(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestExtractionPrefix(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`"Moon" "Sol/Earth" {`, `"Moon" "Sol/Earth" `},
		{`"Mo{on" "Sol" { Radius 5 }`, `"Mo{on" "Sol" `},
		{`"Moon"`, `"Moon"`},
		{`{`, ``},
	}

	for _, tt := range tests {
		if got := ExtractionPrefix(tt.line); got != tt.want {
			t.Errorf("ExtractionPrefix(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestQuotedTokens(t *testing.T) {
	tests := []struct {
		s    string
		want []string
	}{
		{`no quotes`, nil},
		{`"a"`, []string{"a"}},
		{`AltSurface "Alt" "Sol/Earth"`, []string{"Alt", "Sol/Earth"}},
		{`"" ""`, []string{"", ""}},
		{`"a" "unterminated`, []string{"a"}},
		{`"a\"b"`, []string{`a\`}},
	}

	for _, tt := range tests {
		if got := QuotedTokens(tt.s); !slices.Equal(got, tt.want) {
			t.Errorf("QuotedTokens(%q) = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestCountBraces(t *testing.T) {
	opens, closes := countBraces(`"a{" { } }`)
	if opens != 2 || closes != 2 {
		t.Errorf("countBraces = (%d, %d), want (2, 2)", opens, closes)
	}
}
