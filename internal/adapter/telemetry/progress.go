package telemetry

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// Progress reports extraction progress on the terminal. The total number
// of units in a TMX file is unknown up front, so a spinner with a running
// count is shown instead of a determinate bar.
type Progress struct {
	bar  *progressbar.ProgressBar
	last int
}

func NewProgress() *Progress {
	return &Progress{}
}

func (p *Progress) Progress(unitsProcessed, matchesSoFar int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
		)
	}
	p.bar.Add(unitsProcessed - p.last)
	p.last = unitsProcessed
	p.bar.Describe(fmt.Sprintf("Extracting (%d matches)", matchesSoFar))
}

func (p *Progress) Summary(matchedUnits, totalUnits int) {
	if p.bar != nil {
		p.bar.Finish()
		fmt.Println()
	}
	fmt.Printf("Extraction complete: %d/%d units matched\n", matchedUnits, totalUnits)
}

// Nop discards all observations. Used by tests and library callers that
// do not want terminal output.
type Nop struct{}

func (Nop) Progress(unitsProcessed, matchesSoFar int) {}

func (Nop) Summary(matchedUnits, totalUnits int) {}
