package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
)

// Analysis is the immutable audit record of one scoring run.
// The job description itself is never stored.
type Analysis struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FilePath          string         `gorm:"type:text;not null;index:idx_analyses_path_created,priority:1" json:"file_path"`
	Format            string         `gorm:"type:text" json:"format"`
	HasJobDescription bool           `gorm:"not null;default:false" json:"has_job_description"`
	OverallScore      int            `gorm:"not null" json:"overall_score"`
	KeywordsScore     int            `gorm:"not null" json:"keywords_score"`
	FormattingScore   int            `gorm:"not null" json:"formatting_score"`
	SectionsScore     int            `gorm:"not null" json:"sections_score"`
	ReadabilityScore  int            `gorm:"not null" json:"readability_score"`
	Suggestions       datatypes.JSON `gorm:"type:jsonb" json:"suggestions"`
	MissingKeywords   datatypes.JSON `gorm:"type:jsonb" json:"missing_keywords"`
	Issues            datatypes.JSON `gorm:"type:jsonb" json:"issues"`
	CreatedAt         time.Time      `gorm:"not null;index:idx_analyses_path_created,priority:2" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis builds the audit record for result, stamped with now.
func NewAnalysis(filePath, format string, hasJobDescription bool, result ats.AnalysisResult, now time.Time) (*Analysis, error) {
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestions: %w", err)
	}
	missing, err := json.Marshal(result.MissingKeywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode missing keywords: %w", err)
	}
	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return nil, fmt.Errorf("failed to encode issues: %w", err)
	}

	return &Analysis{
		ID:                uuid.New(),
		FilePath:          filePath,
		Format:            format,
		HasJobDescription: hasJobDescription,
		OverallScore:      result.Score.Overall,
		KeywordsScore:     result.Score.Keywords,
		FormattingScore:   result.Score.Formatting,
		SectionsScore:     result.Score.Sections,
		ReadabilityScore:  result.Score.Readability,
		Suggestions:       datatypes.JSON(suggestions),
		MissingKeywords:   datatypes.JSON(missing),
		Issues:            datatypes.JSON(issues),
		CreatedAt:         now,
	}, nil
}

// Result rebuilds the AnalysisResult the record was created from.
func (a *Analysis) Result() (ats.AnalysisResult, error) {
	res := ats.AnalysisResult{
		Score: ats.ScoreBreakdown{
			Overall:     a.OverallScore,
			Keywords:    a.KeywordsScore,
			Formatting:  a.FormattingScore,
			Sections:    a.SectionsScore,
			Readability: a.ReadabilityScore,
		},
		Suggestions:     []string{},
		MissingKeywords: []string{},
		Issues:          []string{},
	}

	for _, field := range []struct {
		raw  datatypes.JSON
		dst  *[]string
		name string
	}{
		{a.Suggestions, &res.Suggestions, "suggestions"},
		{a.MissingKeywords, &res.MissingKeywords, "missing keywords"},
		{a.Issues, &res.Issues, "issues"},
	} {
		if len(field.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(field.raw, field.dst); err != nil {
			return ats.AnalysisResult{}, fmt.Errorf("failed to decode %s: %w", field.name, err)
		}
	}

	return res, nil
}
