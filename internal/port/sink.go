package port

// RowSink receives one row per matched translation unit. Close flushes
// buffered rows; a sink is not usable after Close.
type RowSink interface {
	WriteRow(source, target, matchedKeywords string) error
	Path() string
	Close() error
}
