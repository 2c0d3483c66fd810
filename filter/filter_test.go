package filter

import (
	"strings"
	"testing"

	"github.com/s0up4200/m3client/annosaurus"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Annotation.Concept == "Sebastes"`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty filter expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains("unclosed`,
			wantErr:    true,
		},
		{
			name:       "helper functions",
			expression: `hasAssociation("identity-reference") and hasImage()`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f == nil {
				t.Fatal("expected filter but got nil")
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	obs := annosaurus.Observation{
		Concept:  "Nanomia bijuga",
		Observer: "kwalz",
		Associations: []annosaurus.Association{
			{LinkName: "identity-reference", LinkValue: "12"},
			{LinkName: "comment", LinkValue: "faded, drifting"},
		},
		ImageReferences: []annosaurus.ImageReference{
			{URL: "http://img/frame.png"},
		},
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"concept match", `Annotation.Concept == "Nanomia bijuga"`, true},
		{"concept mismatch", `Annotation.Concept == "Sebastes"`, false},
		{"has association", `hasAssociation("identity-reference")`, true},
		{"missing association", `hasAssociation("population-quantity")`, false},
		{"link value", `linkValue("identity-reference") == "12"`, true},
		{"has image", `hasImage()`, true},
		{"case-insensitive contains", `contains(Annotation.Concept, "NANOMIA")`, true},
		{"combined", `hasImage() and contains(linkValue("comment"), "drifting")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}

			got, err := f.Evaluate(obs)
			if err != nil {
				t.Fatalf("evaluate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.want)
			}
		})
	}
}

func TestEvaluateNonBoolean(t *testing.T) {
	f, err := Compile(`Annotation.Concept`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	_, err = f.Evaluate(annosaurus.Observation{Concept: "Sebastes"})
	if err == nil {
		t.Fatal("expected error for non-boolean result")
	}
	if !strings.Contains(err.Error(), "must evaluate to a boolean") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestApply(t *testing.T) {
	annotations := []*annosaurus.Observation{
		{Concept: "Sebastes", Observer: "kwalz"},
		{Concept: "Nanomia bijuga", Observer: "kwalz"},
		{Concept: "Sebastes diploproa", Observer: "brian"},
	}

	f, err := Compile(`contains(Annotation.Concept, "sebastes")`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	matched, err := f.Apply(annotations)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].Concept != "Sebastes" || matched[1].Concept != "Sebastes diploproa" {
		t.Errorf("matches out of order: %v %v", matched[0].Concept, matched[1].Concept)
	}
}
