// Package generate backs the editor's AI drafting buttons: a summary from
// the whole draft, and single work-experience or project entries expanded
// from a rough description.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"smartcv-backend/internal/llm"
	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/telemetry"
)

var (
	// ErrUnavailable means no LLM provider is configured.
	ErrUnavailable = errors.New("generation is not available")
	// ErrProvider wraps upstream provider failures.
	ErrProvider = errors.New("generation provider failed")
	// ErrEmptyDescription rejects drafting requests with nothing to expand.
	ErrEmptyDescription = errors.New("description is required")
)

type Service struct {
	Client llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{Client: client}
}

// Summary drafts a professional summary from the submitted document.
func (s *Service) Summary(ctx context.Context, doc resumes.Document) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := s.generate(ctx, llm.SummaryPrompt(doc), &out); err != nil {
		return "", err
	}
	if out.Summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrProvider)
	}
	return out.Summary, nil
}

// WorkExperience expands a rough description into a full entry.
func (s *Service) WorkExperience(ctx context.Context, description string) (resumes.WorkExperience, error) {
	if strings.TrimSpace(description) == "" {
		return resumes.WorkExperience{}, ErrEmptyDescription
	}
	var out resumes.WorkExperience
	if err := s.generate(ctx, llm.WorkExperiencePrompt(description), &out); err != nil {
		return resumes.WorkExperience{}, err
	}
	return out, nil
}

// Project expands a rough description into a full project entry.
func (s *Service) Project(ctx context.Context, description string) (resumes.Project, error) {
	if strings.TrimSpace(description) == "" {
		return resumes.Project{}, ErrEmptyDescription
	}
	var out resumes.Project
	if err := s.generate(ctx, llm.ProjectPrompt(description), &out); err != nil {
		return resumes.Project{}, err
	}
	return out, nil
}

func (s *Service) generate(ctx context.Context, prompt string, dest any) error {
	if s.Client == nil {
		return ErrUnavailable
	}
	raw, err := s.Client.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return ErrUnavailable
		}
		telemetry.Error("generation failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrProvider, err)
	}
	return nil
}
