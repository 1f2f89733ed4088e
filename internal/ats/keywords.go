package ats

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTerms is the supply-chain and logistics vocabulary CVs are scored against.
// Order is significant: missing keywords are reported in this order.
var defaultTerms = []string{
	"supply chain",
	"logistics",
	"procurement",
	"inventory",
	"warehouse",
	"distribution",
	"sourcing",
	"purchasing",
	"vendor management",
	"supplier",
	"demand planning",
	"forecasting",
	"transportation",
	"freight",
	"shipping",
	"customs",
	"clearing and forwarding",
	"fleet management",
	"erp",
	"sap",
	"lean",
	"six sigma",
	"kpi",
	"cost reduction",
	"negotiation",
	"contract management",
	"tender",
	"stock control",
	"last mile",
	"cold chain",
	"3pl",
	"order fulfillment",
	"materials management",
	"kism",
	"cips",
}

// Dictionary is an ordered, immutable set of lower-case domain terms.
type Dictionary struct {
	terms []string
}

// NewDictionary trims, lower-cases and de-duplicates terms, keeping first occurrence order.
func NewDictionary(terms []string) (*Dictionary, error) {
	seen := make(map[string]struct{}, len(terms))
	cleaned := make([]string, 0, len(terms))

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		cleaned = append(cleaned, term)
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("keyword dictionary must not be empty")
	}

	return &Dictionary{terms: cleaned}, nil
}

// DefaultDictionary returns the built-in supply-chain dictionary.
func DefaultDictionary() *Dictionary {
	d, err := NewDictionary(defaultTerms)
	if err != nil {
		panic(err)
	}
	return d
}

type dictionaryFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadDictionary reads a YAML file of the form `keywords: [...]`.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}

	d, err := NewDictionary(file.Keywords)
	if err != nil {
		return nil, fmt.Errorf("invalid keywords file %s: %w", path, err)
	}
	return d, nil
}

// Terms returns a copy of the dictionary entries in order.
func (d *Dictionary) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

func (d *Dictionary) Len() int {
	return len(d.terms)
}
