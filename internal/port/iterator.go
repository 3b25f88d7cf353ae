package port

import "tmxmine/internal/domain"

// PairIterator is a lazy, single-pass sequence of aligned sentence pairs.
// Next returns ok=false once the underlying document is exhausted. A
// non-nil error aborts the sequence; the iterator is not restartable.
type PairIterator interface {
	Next() (pair domain.Pair, ok bool, err error)
	Close() error
}
