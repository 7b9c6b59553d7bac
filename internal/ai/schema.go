package ai

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed schemas/extracted_resume.json
	extractedResumeSchema string
	//go:embed schemas/ats_analysis.json
	atsAnalysisSchema string
)

// ExtractedResume is the fixed key set the extraction prompt asks for.
// The shape is an external contract; renaming keys breaks parsing.
type ExtractedResume struct {
	PersonalInfo struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		LinkedIn string `json:"linkedin"`
		Location string `json:"location"`
	} `json:"personalInfo"`
	Summary    string `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []struct {
		Company string `json:"company"`
		Role    string `json:"role"`
		Desc    string `json:"desc"`
	} `json:"experience"`
	Education []struct {
		School string `json:"school"`
		Degree string `json:"degree"`
	} `json:"education"`
}

// Analysis is the ATS audit result returned to the caller. Never persisted.
type Analysis struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// parseExtractedResume validates the stripped model output against the
// extraction schema and unmarshals it. Any failure is ErrParse.
func parseExtractedResume(raw string) (ExtractedResume, error) {
	if err := validateAgainst(extractedResumeSchema, raw); err != nil {
		return ExtractedResume{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var out ExtractedResume
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return ExtractedResume{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return out, nil
}

// parseAnalysis validates and unmarshals the ATS output, clamping the
// score into [0,100]. A missing score reads as 0.
func parseAnalysis(raw string) (Analysis, error) {
	if err := validateAgainst(atsAnalysisSchema, raw); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var wire struct {
		Score           float64  `json:"score"`
		Strengths       []string `json:"strengths"`
		Weaknesses      []string `json:"weaknesses"`
		MissingKeywords []string `json:"missingKeywords"`
		Suggestions     []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Analysis{
		Score:           clampScore(wire.Score),
		Strengths:       emptyIfNil(wire.Strengths),
		Weaknesses:      emptyIfNil(wire.Weaknesses),
		MissingKeywords: emptyIfNil(wire.MissingKeywords),
		Suggestions:     emptyIfNil(wire.Suggestions),
	}, nil
}

func validateAgainst(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range result.Errors() {
		msgs += e.String() + "; "
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}

func clampScore(score float64) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return int(score)
	}
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
