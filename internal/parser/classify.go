package parser

import (
	"math/big"
	"strings"
	"unicode"
)

// Classify returns the record form of a trimmed, comment-free top-level line.
// Prefixes are matched case-insensitively in priority order.
func Classify(line string) LineKind {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "{"), strings.HasPrefix(lower, "}"):
		return LineBraceOnly
	case strings.HasPrefix(lower, "location"), strings.HasPrefix(lower, "barycenter"):
		return LineReferenceFrame
	case strings.HasPrefix(lower, "altsurface"):
		return LineAltSurface
	case strings.HasPrefix(lower, "modify"), strings.HasPrefix(lower, "replace"):
		return LineModifyReplace
	default:
		return LineGeneric
	}
}

// extractLine applies the rule for line's record form.
func extractLine(line string) Outcome {
	switch Classify(line) {
	case LineBraceOnly, LineReferenceFrame:
		return Drop()
	case LineAltSurface:
		return extractAltSurface(line)
	case LineModifyReplace:
		if out, handled := extractModifyReplace(line); handled {
			return out
		}
	}
	return extractGeneric(line)
}

// extractAltSurface keeps the target path of an alternate surface; the first
// token is the surface label.
func extractAltSurface(line string) Outcome {
	tokens := QuotedTokens(ExtractionPrefix(line))
	if len(tokens) < 2 {
		return Unrecognized(line)
	}
	return Emit(strings.TrimSpace(tokens[len(tokens)-1]))
}

// extractModifyReplace handles Modify/Replace declarations. A catalog number
// and quoted names may both be present and both are emitted. handled is
// false when neither was found, in which case the caller treats the line as
// generic.
func extractModifyReplace(line string) (out Outcome, handled bool) {
	parts := splitWhitespace(line, 3)
	if len(parts) < 2 || strings.EqualFold(parts[1], "barycenter") {
		return Drop(), true
	}

	var paths []string
	if hip, ok := catalogNumber(parts[1]); ok {
		paths = append(paths, hip)
		handled = true
	}

	if tokens := QuotedTokens(ExtractionPrefix(line)); len(tokens) > 0 {
		handled = true
		if named := NameFromTokens(tokens); named.Kind == OutcomeEmit {
			paths = append(paths, named.Paths...)
		}
	}

	if !handled {
		return Outcome{}, false
	}
	if len(paths) == 0 {
		return Drop(), true
	}
	return Emit(paths...), true
}

// extractGeneric handles "Name" "Parent" declarations and bare catalog numbers.
func extractGeneric(line string) Outcome {
	tokens := QuotedTokens(ExtractionPrefix(line))
	if len(tokens) > 0 {
		return NameFromTokens(tokens)
	}

	if fields := strings.Fields(line); len(fields) > 0 {
		if hip, ok := catalogNumber(fields[0]); ok {
			return Emit(hip)
		}
	}
	return Unrecognized(line)
}

// NameFromTokens builds an object path from the quoted tokens of a
// declaration. With one token it is the name; with more, the second-to-last
// is the name spec and the last is the parent path. Only the part of a name
// spec before the first ':' is used, the rest being alternate names.
// Names or parents starting with a space, and parents containing "/ ", are
// dropped.
func NameFromTokens(tokens []string) Outcome {
	switch len(tokens) {
	case 0:
		return Drop()
	case 1:
		seg := primaryName(tokens[0])
		if strings.HasPrefix(seg, " ") {
			return Drop()
		}
		if name := strings.TrimSpace(seg); name != "" {
			return Emit(name)
		}
		return Drop()
	}

	seg := primaryName(tokens[len(tokens)-2])
	parent := strings.TrimRight(tokens[len(tokens)-1], "/")
	if strings.HasPrefix(seg, " ") {
		return Drop()
	}

	malformed := strings.HasPrefix(parent, " ") || strings.Contains(parent, "/ ")
	name := strings.TrimSpace(seg)
	switch {
	case malformed:
		return Drop()
	case name == "" && parent == "":
		return Drop()
	case name == "":
		return Emit(parent)
	case parent == "":
		return Emit(name)
	default:
		return Emit(parent + "/" + name)
	}
}

func primaryName(spec string) string {
	seg, _, _ := strings.Cut(spec, ":")
	return seg
}

// catalogNumber formats word as "HIP <n>" when it is a decimal integer
// with an optional sign. There is no width limit.
func catalogNumber(word string) (string, bool) {
	n, ok := new(big.Int).SetString(word, 10)
	if !ok {
		return "", false
	}
	return "HIP " + n.String(), true
}

// splitWhitespace splits s on runs of whitespace into at most n parts; the
// last part keeps the remainder of the string.
func splitWhitespace(s string, n int) []string {
	var parts []string
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for s != "" && len(parts) < n-1 {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		parts = append(parts, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
