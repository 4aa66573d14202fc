package parser

// ParseResult holds parsing output for a single catalog file.
type ParseResult struct {
	// FilePath is the absolute path to the parsed file (empty for in-memory text).
	FilePath string
	// FileType is the catalog kind derived from the extension (ssc, stc, dsc).
	FileType string
	// ObjectPaths are the extracted object paths in extraction order, duplicates kept.
	ObjectPaths []string
	// UnrecognizedLines are trimmed top-level lines no rule could classify.
	UnrecognizedLines []string
}

// Parser is the interface for catalog file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts object paths from a file.
	Parse(filePath string) (*ParseResult, error)
}

// LineKind is the record form of a top-level catalog line.
type LineKind int

const (
	LineGeneric        LineKind = iota // "Name" "Parent", bare catalog numbers
	LineBraceOnly                      // starts with { or }
	LineReferenceFrame                 // Location, Barycenter
	LineAltSurface                     // AltSurface "Label" "Path"
	LineModifyReplace                  // Modify/Replace <number|"Name"> ...
)

func (k LineKind) String() string {
	switch k {
	case LineBraceOnly:
		return "brace-only"
	case LineReferenceFrame:
		return "reference-frame"
	case LineAltSurface:
		return "altsurface"
	case LineModifyReplace:
		return "modify-replace"
	default:
		return "generic"
	}
}

// OutcomeKind tells what an extraction rule decided for a line.
type OutcomeKind int

const (
	OutcomeDrop OutcomeKind = iota
	OutcomeEmit
	OutcomeUnrecognized
)

// Outcome is the result of applying one extraction rule.
type Outcome struct {
	Kind  OutcomeKind
	Paths []string
	Line  string
}

// Emit returns an outcome carrying object paths.
func Emit(paths ...string) Outcome {
	return Outcome{Kind: OutcomeEmit, Paths: paths}
}

// Unrecognized returns an outcome recording line for later inspection.
func Unrecognized(line string) Outcome {
	return Outcome{Kind: OutcomeUnrecognized, Line: line}
}

// Drop returns an outcome that emits and records nothing.
func Drop() Outcome {
	return Outcome{Kind: OutcomeDrop}
}
