package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/enhance_summary_system.txt
	enhanceSummarySystem string
	//go:embed prompts/enhance_jobdesc_system.txt
	enhanceJobDescSystem string
	//go:embed prompts/extract_system.txt
	extractSystem string
	//go:embed prompts/extract_user.txt
	extractUser string
	//go:embed prompts/ats_system.txt
	atsSystem string
	//go:embed prompts/ats_user.txt
	atsUser string
)

// EnhanceSummaryRequest builds the request for improving a professional summary.
func EnhanceSummaryRequest(userContent string) Request {
	return Request{
		System: strings.TrimSpace(enhanceSummarySystem),
		User:   userContent,
	}
}

// EnhanceJobDescriptionRequest builds the request for rewriting a job description bullet.
func EnhanceJobDescriptionRequest(userContent string) Request {
	return Request{
		System: strings.TrimSpace(enhanceJobDescSystem),
		User:   userContent,
	}
}

// ExtractResumeRequest builds the structured extraction request for raw resume text.
func ExtractResumeRequest(resumeText string) Request {
	return Request{
		System:   strings.TrimSpace(extractSystem),
		User:     fmt.Sprintf(extractUser, resumeText),
		JSONMode: true,
	}
}

// ATSAuditRequest builds the ATS scoring request for a job description and resume pair.
func ATSAuditRequest(jobDescription, cvText string) Request {
	return Request{
		System:   strings.TrimSpace(atsSystem),
		User:     fmt.Sprintf(atsUser, jobDescription, cvText),
		JSONMode: true,
	}
}
