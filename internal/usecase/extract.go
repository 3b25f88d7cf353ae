package usecase

import (
	"strings"

	"tmxmine/internal/domain"
	"tmxmine/internal/port"
)

const defaultProgressInterval = 500000

// ExtractUseCase drives a pair iterator to completion, filters each pair
// against the configured keywords and writes matching rows to a sink.
type ExtractUseCase struct {
	telemetry        port.Telemetry
	progressInterval int
}

func NewExtractUseCase(telemetry port.Telemetry, progressInterval int) *ExtractUseCase {
	if progressInterval <= 0 {
		progressInterval = defaultProgressInterval
	}
	return &ExtractUseCase{
		telemetry:        telemetry,
		progressInterval: progressInterval,
	}
}

// Extract pulls one pair at a time and fully processes it before
// requesting the next, so working memory stays bounded by the largest
// single unit regardless of corpus size.
//
// Keywords are tested in configuration order and a unit increments each
// keyword's count at most once per list occurrence, no matter how often
// the keyword recurs in the text. Duplicate keywords in the list are
// counted independently.
func (u *ExtractUseCase) Extract(it port.PairIterator, sink port.RowSink, opts domain.FilterOptions) (*domain.ExtractionResult, error) {
	// Lowercased copies are used for the containment test only; reporting
	// keeps the configured casing.
	needles := make([]string, len(opts.Keywords))
	for i, kw := range opts.Keywords {
		if opts.CaseSensitive {
			needles[i] = kw
		} else {
			needles[i] = strings.ToLower(kw)
		}
	}

	counts := make(map[string]int, len(opts.Keywords))
	for _, kw := range opts.Keywords {
		counts[kw] = 0
	}

	total := 0
	matched := 0

	for {
		pair, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		total++

		var search string
		switch opts.Scope {
		case domain.ScopeSource:
			search = pair.Source
		case domain.ScopeTarget:
			search = pair.Target
		default:
			// One concatenated haystack, not two independent searches: a
			// keyword spanning the source/target boundary will not match.
			search = pair.Source + " " + pair.Target
		}
		if !opts.CaseSensitive {
			search = strings.ToLower(search)
		}

		var hits []string
		for i, kw := range opts.Keywords {
			if strings.Contains(search, needles[i]) {
				hits = append(hits, kw)
				counts[kw]++
			}
		}

		if len(hits) > 0 {
			if err := sink.WriteRow(pair.Source, pair.Target, strings.Join(hits, "|")); err != nil {
				return nil, err
			}
			matched++
		}

		if total%u.progressInterval == 0 {
			u.telemetry.Progress(total, matched)
		}
	}

	u.telemetry.Summary(matched, total)

	return &domain.ExtractionResult{
		OutputPath:    sink.Path(),
		TotalUnits:    total,
		MatchedUnits:  matched,
		KeywordCounts: counts,
	}, nil
}
