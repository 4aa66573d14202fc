package parser

import (
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"{", LineBraceOnly},
		{"} # end", LineBraceOnly},
		{`Location "Crater" "Sol/Moon"`, LineReferenceFrame},
		{`barycenter "Alpha Cen"`, LineReferenceFrame},
		{`AltSurface "Alt" "Sol/Earth"`, LineAltSurface},
		{`ALTSURFACE "Alt" "Sol/Earth"`, LineAltSurface},
		{`Modify 12345`, LineModifyReplace},
		{`replace "Moon" "Sol/Earth"`, LineModifyReplace},
		{`"Moon" "Sol/Earth"`, LineGeneric},
		{`ReferencePoint "X" "Sol"`, LineGeneric},
		{`70890`, LineGeneric},
	}

	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
		}
	}
}

func TestNameFromTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		kind   OutcomeKind
		paths  []string
	}{
		{"no tokens", nil, OutcomeDrop, nil},
		{"single name", []string{"Sol"}, OutcomeEmit, []string{"Sol"}},
		{"single name trimmed", []string{"Sol  :Sun"}, OutcomeEmit, []string{"Sol"}},
		{"single leading space", []string{" Sol"}, OutcomeDrop, nil},
		{"single empty", []string{":Alias"}, OutcomeDrop, nil},
		{"name and parent", []string{"Moon", "Sol/Earth"}, OutcomeEmit, []string{"Sol/Earth/Moon"}},
		{"parent slashes", []string{"Moon", "Sol/Earth///"}, OutcomeEmit, []string{"Sol/Earth/Moon"}},
		{"empty parent", []string{"Moon", ""}, OutcomeEmit, []string{"Moon"}},
		{"parent only slashes", []string{"Moon", "//"}, OutcomeEmit, []string{"Moon"}},
		{"empty name", []string{"", "Sol/Earth"}, OutcomeEmit, []string{"Sol/Earth"}},
		{"blank name", []string{"   ", "Sol"}, OutcomeDrop, nil},
		{"empty name leading space parent", []string{"", " Sol"}, OutcomeDrop, nil},
		{"empty name and parent", []string{"", ""}, OutcomeDrop, nil},
		{"slash space parent", []string{"Moon", "Sol/ Earth"}, OutcomeDrop, nil},
		{"leading space parent", []string{"Moon", " Sol"}, OutcomeDrop, nil},
		{"last two tokens used", []string{"ignored", "Io", "Sol/Jupiter"}, OutcomeEmit, []string{"Sol/Jupiter/Io"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameFromTokens(tt.tokens)
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %d, want %d", got.Kind, tt.kind)
			}
			if !slices.Equal(got.Paths, tt.paths) {
				t.Errorf("Paths = %q, want %q", got.Paths, tt.paths)
			}
		})
	}
}

func TestExtractModifyReplace(t *testing.T) {
	tests := []struct {
		line    string
		handled bool
		paths   []string
	}{
		{"Modify 12345 { Radius 1 }", true, []string{"HIP 12345"}},
		{"Modify barycenter", true, nil},
		{"Replace", true, nil},
		{`Modify 9 "Vega"`, true, []string{"HIP 9", "Vega"}},
		{`Modify "  Bad" "Sol"`, true, nil},
		{"Modify Moon", false, nil},
	}

	for _, tt := range tests {
		out, handled := extractModifyReplace(tt.line)
		if handled != tt.handled {
			t.Errorf("extractModifyReplace(%q) handled = %v, want %v", tt.line, handled, tt.handled)
			continue
		}
		if !slices.Equal(out.Paths, tt.paths) {
			t.Errorf("extractModifyReplace(%q) paths = %q, want %q", tt.line, out.Paths, tt.paths)
		}
	}
}

func TestSplitWhitespace(t *testing.T) {
	got := splitWhitespace("Modify \t 12345   \"A\" \"B\"", 3)
	want := []string{"Modify", "12345", `"A" "B"`}
	if !slices.Equal(got, want) {
		t.Errorf("splitWhitespace = %q, want %q", got, want)
	}
	if got := splitWhitespace("Modify", 3); !slices.Equal(got, []string{"Modify"}) {
		t.Errorf("splitWhitespace(Modify) = %q", got)
	}
}
