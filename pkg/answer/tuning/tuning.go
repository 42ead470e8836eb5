// FILE: pkg/answer/tuning/tuning.go
// PURPOSE: Deployment-level yaml overrides for domain trust and minimum relevance scores

package tuning

import (
	"fmt"
	"os"

	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/strategy"

	"gopkg.in/yaml.v3"
)

// File mirrors the tuning yaml:
//
//	domain_trust:
//	  - domain: go.dev
//	    score: 90
//	min_relevance_score:
//	  general: 50
//	  coding: 80
type File struct {
	DomainTrust       []relevance.DomainTrust `yaml:"domain_trust"`
	MinRelevanceScore map[string]float64      `yaml:"min_relevance_score"`
}

// Load reads and validates the tuning file at path. An empty path yields
// an empty File.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	for _, dt := range f.DomainTrust {
		if dt.Domain == "" {
			return fmt.Errorf("domain_trust entry without domain")
		}
		if dt.Score < 0 || dt.Score > 100 {
			return fmt.Errorf("domain_trust %s: score %.1f out of range [0,100]", dt.Domain, dt.Score)
		}
	}
	for name, score := range f.MinRelevanceScore {
		if intent.ParseCategory(name) != intent.Category(name) {
			return fmt.Errorf("min_relevance_score: unknown category %q", name)
		}
		if score < 0 || score > 100 {
			return fmt.Errorf("min_relevance_score %s: %.1f out of range [0,100]", name, score)
		}
	}
	return nil
}

// Apply returns tables and catalog with the overrides applied. The inputs are
// not modified.
func (f *File) Apply(tables relevance.Tables, catalog *strategy.Catalog) (relevance.Tables, *strategy.Catalog) {
	if len(f.DomainTrust) > 0 {
		tables = tables.WithDomainTrust(f.DomainTrust)
	}
	if len(f.MinRelevanceScore) > 0 {
		overrides := make(map[intent.Category]float64, len(f.MinRelevanceScore))
		for name, score := range f.MinRelevanceScore {
			overrides[intent.Category(name)] = score
		}
		catalog = catalog.WithMinScores(overrides)
	}
	return tables, catalog
}

// LoadDefaults loads the tuning file at path and applies it to the
// compiled-in tables and catalog.
func LoadDefaults(path string) (relevance.Tables, *strategy.Catalog, error) {
	f, err := Load(path)
	if err != nil {
		return relevance.Tables{}, nil, err
	}
	tables, catalog := f.Apply(relevance.DefaultTables(), strategy.DefaultCatalog())
	return tables, catalog, nil
}
