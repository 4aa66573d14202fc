package parser

import (
	"strings"
)

// LogicalLines splits catalog text into logical lines. A physical line that
// leaves a quoted string open is joined (with "\n") to the following physical
// lines until the quote count of the accumulated text is even again. Text
// ending inside an open quote yields the partial accumulator as a final line.
func LogicalLines(text string) []string {
	var (
		lines  []string
		acc    strings.Builder
		quotes int
		open   bool
	)

	for _, physical := range splitPhysical(text) {
		if open {
			acc.WriteByte('\n')
		} else {
			acc.Reset()
			quotes = 0
		}
		acc.WriteString(physical)
		quotes += strings.Count(physical, `"`)

		if quotes%2 == 1 {
			open = true
			continue
		}
		open = false
		lines = append(lines, acc.String())
	}

	if open {
		lines = append(lines, acc.String())
	}
	return lines
}

// splitPhysical splits on \n, \r\n and \r. A trailing line break does not
// produce an extra empty line.
func splitPhysical(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// StripComment truncates line at the first '#' outside a quoted string and
// trims surrounding whitespace.
func StripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return strings.TrimSpace(line)
}

// ExtractionPrefix returns the part of line before the first '{' that is not
// inside a quoted string.
func ExtractionPrefix(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '{':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// QuotedTokens returns the contents of every closed "..." pair in s.
// There are no escapes: every '"' toggles the quote state. An unterminated
// trailing quote contributes nothing.
func QuotedTokens(s string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if start < 0 {
			start = i + 1
			continue
		}
		tokens = append(tokens, s[start:i])
		start = -1
	}
	return tokens
}

// countBraces counts '{' and '}' anywhere in line, quoted or not.
func countBraces(line string) (opens, closes int) {
	return strings.Count(line, "{"), strings.Count(line, "}")
}
