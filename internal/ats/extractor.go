package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxJobKeywordMatches = 10

var (
	contactRegex    = regexp.MustCompile(`(?i)email|phone|linkedin|address`)
	educationRegex  = regexp.MustCompile(`(?i)education|degree|university|college|bachelor|master|phd`)
	experienceRegex = regexp.MustCompile(`(?i)experience|work|employment|position|role|job`)
	skillsRegex     = regexp.MustCompile(`(?i)skills|competencies|abilities|proficient|experienced`)
	bulletRegex     = regexp.MustCompile(`[•\-*]`)
	sentenceRegex   = regexp.MustCompile(`[.!?]+`)
	yearRegex       = regexp.MustCompile(`(?:^|\D)\d{4}(?:\D|$)`)
)

// Features is everything the scorer needs to know about a document.
type Features struct {
	CharCount     int
	TokenCount    int
	SentenceCount int

	FoundKeywords     []string
	MissingKeywords   []string
	JobKeywordMatches []string

	HasContactInfo bool
	HasEducation   bool
	HasExperience  bool
	HasSkills      bool

	HasBulletPoints  bool
	HasProperSpacing bool
	HasDates         bool

	AvgWordsPerSentence float64
}

// Extract derives Features from raw document text. An empty jobDescription
// means none was supplied. Extract is pure and safe for concurrent use.
func Extract(dict *Dictionary, text, jobDescription string) Features {
	tokens := strings.Fields(text)
	lower := strings.ToLower(text)

	f := Features{
		CharCount:        utf8.RuneCountInString(text),
		TokenCount:       len(tokens),
		FoundKeywords:    []string{},
		MissingKeywords:  []string{},
		HasContactInfo:   contactRegex.MatchString(text),
		HasEducation:     educationRegex.MatchString(text),
		HasExperience:    experienceRegex.MatchString(text),
		HasSkills:        skillsRegex.MatchString(text),
		HasBulletPoints:  bulletRegex.MatchString(text),
		HasProperSpacing: strings.Contains(text, "\n\n"),
		HasDates:         yearRegex.MatchString(text),
	}

	for _, term := range dict.terms {
		if strings.Contains(lower, term) {
			f.FoundKeywords = append(f.FoundKeywords, term)
		} else {
			f.MissingKeywords = append(f.MissingKeywords, term)
		}
	}

	if jobDescription != "" {
		f.JobKeywordMatches = matchJobKeywords(tokens, jobDescription)
	}

	f.SentenceCount = len(sentenceRegex.Split(text, -1))
	if f.SentenceCount < 1 {
		f.SentenceCount = 1
	}
	f.AvgWordsPerSentence = float64(f.TokenCount) / float64(f.SentenceCount)

	return f
}

// matchJobKeywords returns job-description tokens longer than three characters
// that also appear in the document, first occurrence order, at most ten.
func matchJobKeywords(docTokens []string, jobDescription string) []string {
	docSet := make(map[string]struct{}, len(docTokens))
	for _, t := range docTokens {
		docSet[strings.ToLower(t)] = struct{}{}
	}

	var matches []string
	seen := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(jobDescription)) {
		if utf8.RuneCountInString(t) <= 3 {
			continue
		}
		if _, ok := docSet[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		matches = append(matches, t)
		if len(matches) == maxJobKeywordMatches {
			break
		}
	}
	return matches
}
