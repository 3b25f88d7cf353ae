package domain

import (
	"fmt"
	"time"
)

// Pair is one aligned translation unit: the source-language text and the
// target-language text, both trimmed and non-empty.
type Pair struct {
	Source string
	Target string
}

// MatchScope selects which side(s) of a pair are searched for keywords.
type MatchScope int

const (
	ScopeSource MatchScope = iota
	ScopeTarget
	ScopeBoth
)

func (s MatchScope) String() string {
	switch s {
	case ScopeSource:
		return "source"
	case ScopeTarget:
		return "target"
	case ScopeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMatchScope parses "source", "target" or "both".
func ParseMatchScope(s string) (MatchScope, error) {
	switch s {
	case "source":
		return ScopeSource, nil
	case "target":
		return ScopeTarget, nil
	case "both":
		return ScopeBoth, nil
	default:
		return ScopeSource, fmt.Errorf("invalid match scope %q (want source, target or both)", s)
	}
}

// FilterOptions configures keyword matching for one extraction.
type FilterOptions struct {
	Keywords      []string
	CaseSensitive bool
	Scope         MatchScope
}

// ExtractionResult holds the statistics of one completed extraction.
type ExtractionResult struct {
	OutputPath    string
	TotalUnits    int
	MatchedUnits  int
	KeywordCounts map[string]int
}

// RunRecord is one extraction run as persisted in the history store.
type RunRecord struct {
	ID           string         `json:"id"`
	InputPath    string         `json:"input_path"`
	OutputPath   string         `json:"output_path"`
	SourceLang   string         `json:"source_lang"`
	TargetLang   string         `json:"target_lang"`
	Keywords     []string       `json:"keywords"`
	TotalUnits   int            `json:"total_units"`
	MatchedUnits int            `json:"matched_units"`
	Counts       map[string]int `json:"counts"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
}

// Survey summarizes a TMX file without filtering: how many translation
// units it holds and how many variants were seen per language tag.
type Survey struct {
	Units     int
	Variants  int
	Languages map[string]int
}
