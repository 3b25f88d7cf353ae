package usecase

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"tmxmine/internal/adapter/fs"
	"tmxmine/internal/domain"
	"tmxmine/internal/port"
)

// IteratorFactory opens a pair iterator for one input file.
type IteratorFactory func(path string) (port.PairIterator, error)

// SinkFactory opens the output sink for one input file.
type SinkFactory func(inputPath string) (port.RowSink, error)

// BatchUseCase extracts every TMX file found under a corpus directory.
// Files are processed with bounded concurrency; each file's extraction
// is still strictly sequential internally.
type BatchUseCase struct {
	walker      *fs.Walker
	extract     *ExtractUseCase
	newIterator IteratorFactory
	newSink     SinkFactory
	opts        domain.FilterOptions
	concurrency int
}

func NewBatchUseCase(
	walker *fs.Walker,
	extract *ExtractUseCase,
	newIterator IteratorFactory,
	newSink SinkFactory,
	opts domain.FilterOptions,
	concurrency int,
) *BatchUseCase {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchUseCase{
		walker:      walker,
		extract:     extract,
		newIterator: newIterator,
		newSink:     newSink,
		opts:        opts,
		concurrency: concurrency,
	}
}

// BatchResult contains the per-file results of a batch run. A file that
// fails does not abort the remaining files; its error is recorded.
type BatchResult struct {
	Results map[string]*domain.ExtractionResult
	Errors  []string
}

// Run extracts every matching file under root. The optional progress
// callback is invoked after each file completes.
func (u *BatchUseCase) Run(root string, progress func(processed, total int, file string)) (*BatchResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	result := &BatchResult{Results: make(map[string]*domain.ExtractionResult)}
	var mu sync.Mutex
	processed := 0

	g := new(errgroup.Group)
	g.SetLimit(u.concurrency)

	for _, file := range files {
		file := file
		g.Go(func() error {
			res, err := u.extractOne(file)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
			} else {
				result.Results[file] = res
			}
			if progress != nil {
				progress(processed, len(files), file)
			}
			return nil
		})
	}

	g.Wait()
	return result, nil
}

func (u *BatchUseCase) extractOne(file string) (*domain.ExtractionResult, error) {
	it, err := u.newIterator(file)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	snk, err := u.newSink(file)
	if err != nil {
		return nil, err
	}

	res, err := u.extract.Extract(it, snk, u.opts)
	if cerr := snk.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
