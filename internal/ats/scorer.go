package ats

const (
	maxMissingKeywords = 8

	minKeywordsForCoverage = 5
	minCharCount           = 500
	minTokenCount          = 100
	maxAvgSentenceWords    = 20
	minAvgSentenceWords    = 8

	readabilityGood = 90
	readabilityPoor = 60
)

const (
	SuggestionKeywords    = "Include more supply chain and logistics keywords relevant to your experience."
	SuggestionContactInfo = "Ensure your contact information (email, phone, LinkedIn) is clearly visible."
	SuggestionBullets     = "Use bullet points to improve readability and ATS parsing."
	SuggestionSentences   = "Use shorter, clearer sentences for better ATS compatibility."

	IssueTooShort     = "CV appears too short — consider adding more detail about your experience."
	IssueNoDates      = "No dates found — include employment dates and education years."
	IssueInsufficient = "CV content seems insufficient for proper ATS analysis."
)

// ScoreBreakdown holds the 0-100 sub-scores and their weighted overall.
type ScoreBreakdown struct {
	Overall     int `json:"overall"`
	Keywords    int `json:"keywords"`
	Formatting  int `json:"formatting"`
	Sections    int `json:"sections"`
	Readability int `json:"readability"`
}

// AnalysisResult is the complete output of one scoring run.
type AnalysisResult struct {
	Score             ScoreBreakdown `json:"score"`
	Suggestions       []string       `json:"suggestions"`
	MissingKeywords   []string       `json:"missingKeywords"`
	Issues            []string       `json:"issues"`
	JobKeywordMatches []string       `json:"jobKeywordMatches,omitempty"`
}

// Scorer turns document text into an AnalysisResult against a fixed dictionary.
// It holds no mutable state and may be shared between goroutines.
type Scorer struct {
	dict *Dictionary
}

func NewScorer(dict *Dictionary) *Scorer {
	return &Scorer{dict: dict}
}

// Analyze extracts features from text and scores them.
func (s *Scorer) Analyze(text, jobDescription string) AnalysisResult {
	return s.Score(Extract(s.dict, text, jobDescription))
}

// Score computes the result for already extracted features.
func (s *Scorer) Score(f Features) AnalysisResult {
	breakdown := ScoreBreakdown{
		Keywords:    keywordScore(len(f.FoundKeywords), s.dict.Len()),
		Sections:    25 * countTrue(f.HasContactInfo, f.HasEducation, f.HasExperience, f.HasSkills),
		Formatting:  50 * countTrue(f.HasBulletPoints, f.HasProperSpacing),
		Readability: readabilityScore(f.AvgWordsPerSentence),
	}
	breakdown.Overall = overallScore(breakdown)

	missing := f.MissingKeywords
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}

	return AnalysisResult{
		Score:             breakdown,
		Suggestions:       suggestions(f),
		MissingKeywords:   append([]string{}, missing...),
		Issues:            issues(f),
		JobKeywordMatches: f.JobKeywordMatches,
	}
}

// keywordScore is found/total as a rounded percentage, capped at 100.
func keywordScore(found, total int) int {
	if total <= 0 {
		return 0
	}
	score := (200*found + total) / (2 * total)
	return clamp(score)
}

func readabilityScore(avg float64) int {
	if avg > minAvgSentenceWords && avg < maxAvgSentenceWords {
		return readabilityGood
	}
	return readabilityPoor
}

// overallScore weights keywords 0.30, sections 0.25, formatting 0.25 and
// readability 0.20, rounding half up. Integer arithmetic keeps .5 exact.
func overallScore(b ScoreBreakdown) int {
	weighted := 30*b.Keywords + 25*b.Sections + 25*b.Formatting + 20*b.Readability
	return clamp((weighted + 50) / 100)
}

func suggestions(f Features) []string {
	out := []string{}
	if len(f.FoundKeywords) < minKeywordsForCoverage {
		out = append(out, SuggestionKeywords)
	}
	if !f.HasContactInfo {
		out = append(out, SuggestionContactInfo)
	}
	if !f.HasBulletPoints {
		out = append(out, SuggestionBullets)
	}
	if f.AvgWordsPerSentence > maxAvgSentenceWords {
		out = append(out, SuggestionSentences)
	}
	return out
}

func issues(f Features) []string {
	out := []string{}
	if f.CharCount < minCharCount {
		out = append(out, IssueTooShort)
	}
	if !f.HasDates {
		out = append(out, IssueNoDates)
	}
	if f.TokenCount < minTokenCount {
		out = append(out, IssueInsufficient)
	}
	return out
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
