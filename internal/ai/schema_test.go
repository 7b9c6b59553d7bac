package ai

import (
	"errors"
	"testing"
)

func TestParseExtractedResume(t *testing.T) {
	raw := `{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "123", "linkedin": "in/jane", "location": "Berlin"},
		"summary": "Engineer.",
		"skills": ["Go", "SQL"],
		"experience": [{"company": "Acme", "role": "Engineer", "desc": "Built things"}],
		"education": [{"school": "MIT", "degree": "BSc"}]
	}`

	got, err := parseExtractedResume(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.PersonalInfo.FullName != "Jane Doe" || len(got.Skills) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Experience[0].Role != "Engineer" {
		t.Fatalf("experience not mapped: %+v", got.Experience)
	}
}

func TestParseExtractedResumeMissingKeysIsParseError(t *testing.T) {
	_, err := parseExtractedResume(`{"summary": "only a summary"}`)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseExtractedResumeInvalidJSONIsParseError(t *testing.T) {
	_, err := parseExtractedResume("here is your resume: {")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseAnalysisClampsScore(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		score int
	}{
		{name: "in range", raw: `{"score": 87, "strengths": [], "weaknesses": [], "missingKeywords": [], "suggestions": []}`, score: 87},
		{name: "above range", raw: `{"score": 250, "strengths": [], "weaknesses": [], "missingKeywords": [], "suggestions": []}`, score: 100},
		{name: "below range", raw: `{"score": -5, "strengths": [], "weaknesses": [], "missingKeywords": [], "suggestions": []}`, score: 0},
		{name: "missing score", raw: `{"strengths": [], "weaknesses": [], "missingKeywords": [], "suggestions": []}`, score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnalysis(tt.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.Score != tt.score {
				t.Fatalf("score = %d, want %d", got.Score, tt.score)
			}
		})
	}
}

func TestParseAnalysisMissingArraysIsParseError(t *testing.T) {
	_, err := parseAnalysis(`{"score": 50}`)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
