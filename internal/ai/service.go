package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/extract"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/llm"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/resumes"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/metrics"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/object"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/telemetry"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/usage"
)

// minImportTextLen rejects near-empty extractions (scanned PDFs) before an
// LLM call is wasted on them.
const minImportTextLen = 10

const defaultImportTitle = "Imported Resume"

// Service orchestrates the LLM-backed pipelines: field enhancement, resume
// import, and the ATS audit.
type Service struct {
	LLM     llm.Client
	Resumes *resumes.Service
	Usage   *usage.Service
	// Store keeps uploaded source documents for later reference. Optional;
	// saving is best-effort and never fails an import.
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(llmClient llm.Client, resumeSvc *resumes.Service, usageSvc *usage.Service, store object.ObjectStore) *Service {
	return &Service{LLM: llmClient, Resumes: resumeSvc, Usage: usageSvc, Store: store}
}

// EnhanceSummary rewrites a professional summary into 1-2 sentences.
func (s *Service) EnhanceSummary(ctx context.Context, userID, userContent string) (string, error) {
	return s.enhance(ctx, userID, userContent, llm.EnhanceSummaryRequest)
}

// EnhanceJobDescription rewrites a job description bullet to be
// action-oriented.
func (s *Service) EnhanceJobDescription(ctx context.Context, userID, userContent string) (string, error) {
	return s.enhance(ctx, userID, userContent, llm.EnhanceJobDescriptionRequest)
}

func (s *Service) enhance(ctx context.Context, userID, userContent string, build func(string) llm.Request) (string, error) {
	if strings.TrimSpace(userContent) == "" {
		return "", ErrValidation
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return "", err
	}

	metrics.IncEnhance()
	out, err := s.generate(ctx, userID, build(userContent))
	if err != nil {
		metrics.IncEnhanceFailed()
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ImportResume turns raw resume text into a new stored Resume owned by
// userID. Create-only: two imports of the same text yield two resumes.
func (s *Service) ImportResume(ctx context.Context, userID, resumeText, title string) (resumes.Resume, error) {
	text := strings.TrimSpace(resumeText)
	if len(text) < minImportTextLen {
		return resumes.Resume{}, fmt.Errorf("%w: text too short", ErrExtraction)
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return resumes.Resume{}, err
	}

	metrics.IncImport()
	raw, err := s.generate(ctx, userID, llm.ExtractResumeRequest(text))
	if err != nil {
		metrics.IncImportFailed()
		return resumes.Resume{}, err
	}

	extracted, err := parseExtractedResume(StripFences(raw))
	if err != nil {
		metrics.IncImportFailed()
		telemetry.Error("resume import parse", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return resumes.Resume{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = defaultImportTitle
	}

	resume, err := s.Resumes.Create(ctx, userID, importedToNewResume(title, extracted))
	if err != nil {
		metrics.IncImportFailed()
		return resumes.Resume{}, err
	}
	return resume, nil
}

// ImportResumeFile extracts text from an uploaded document server-side and
// then runs the regular import pipeline.
func (s *Service) ImportResumeFile(ctx context.Context, userID string, data []byte, mimeType, fileName, title string) (resumes.Resume, error) {
	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return resumes.Resume{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	// Keep the source document for reference. Best-effort only.
	if s.Store != nil {
		if _, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data)); err != nil {
			telemetry.Error("store imported document", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	return s.ImportResume(ctx, userID, text, title)
}

// CheckATS scores a resume against a job description. Stateless; nothing
// is persisted.
func (s *Service) CheckATS(ctx context.Context, userID, jobDescription, cvText string) (Analysis, error) {
	jd := normalizeWhitespace(jobDescription)
	cv := normalizeWhitespace(cvText)
	if jd == "" || cv == "" {
		return Analysis{}, ErrValidation
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return Analysis{}, err
	}

	metrics.IncAudit()
	raw, err := s.generate(ctx, userID, llm.ATSAuditRequest(jd, cv))
	if err != nil {
		metrics.IncAuditFailed()
		return Analysis{}, err
	}

	analysis, err := parseAnalysis(StripFences(raw))
	if err != nil {
		metrics.IncAuditFailed()
		telemetry.Error("ats audit parse", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return Analysis{}, err
	}
	return analysis, nil
}

// generate runs one gateway call, recording duration and consuming quota
// on success. Provider errors are collapsed into ErrGateway; detail goes
// to the log only.
func (s *Service) generate(ctx context.Context, userID string, req llm.Request) (string, error) {
	start := time.Now()
	out, err := s.LLM.Generate(ctx, req)
	metrics.ObserveAIRequestDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		telemetry.Error("llm gateway call", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", ErrGateway
	}

	if s.Usage != nil {
		if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
			telemetry.Error("consume ai quota", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return out, nil
}

func (s *Service) checkQuota(ctx context.Context, userID string) error {
	if s.Usage == nil {
		return nil
	}
	ok, _, err := s.Usage.CanConsume(ctx, userID, 1)
	if err != nil {
		return err
	}
	if !ok {
		return usage.ErrLimitReached
	}
	return nil
}

func importedToNewResume(title string, extracted ExtractedResume) resumes.NewResume {
	out := resumes.NewResume{
		Title: title,
		PersonalInfo: resumes.PersonalInfo{
			FullName: extracted.PersonalInfo.FullName,
			Email:    extracted.PersonalInfo.Email,
			Phone:    extracted.PersonalInfo.Phone,
			LinkedIn: extracted.PersonalInfo.LinkedIn,
			Location: extracted.PersonalInfo.Location,
		},
		ProfessionalSummary: extracted.Summary,
		Skills:              extracted.Skills,
	}
	for _, exp := range extracted.Experience {
		out.Experience = append(out.Experience, resumes.Experience{
			Company:     exp.Company,
			Position:    exp.Role,
			Description: exp.Desc,
		})
	}
	for _, edu := range extracted.Education {
		out.Education = append(out.Education, resumes.Education{
			Institution: edu.School,
			Degree:      edu.Degree,
		})
	}
	return out
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
