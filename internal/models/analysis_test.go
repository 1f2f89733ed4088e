package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
)

func TestNewAnalysis(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	res := ats.NewScorer(ats.DefaultDictionary()).Analyze("Logistics officer, email: a@b.ke", "freight")

	rec, err := NewAnalysis("cv_1.txt", "text", true, res, now)
	require.NoError(t, err)

	assert.Equal(t, "cv_1.txt", rec.FilePath)
	assert.True(t, rec.HasJobDescription)
	assert.Equal(t, now, rec.CreatedAt)
	assert.Equal(t, res.Score.Overall, rec.OverallScore)

	back, err := rec.Result()
	require.NoError(t, err)
	assert.Equal(t, res.Score, back.Score)
	assert.Equal(t, res.Suggestions, back.Suggestions)
	assert.Equal(t, res.MissingKeywords, back.MissingKeywords)
	assert.Equal(t, res.Issues, back.Issues)
}

func TestAnalysis_ResultWithEmptyColumns(t *testing.T) {
	rec := &Analysis{OverallScore: 12, ReadabilityScore: 60}

	res, err := rec.Result()
	require.NoError(t, err)
	assert.Equal(t, 12, res.Score.Overall)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Issues)
}

func TestAnalysis_ResultCorruptColumn(t *testing.T) {
	rec := &Analysis{Issues: []byte("{not json")}

	_, err := rec.Result()
	assert.Error(t, err)
}
