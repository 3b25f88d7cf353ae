package usecase

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"tmxmine/internal/adapter/sink"
	"tmxmine/internal/adapter/telemetry"
	"tmxmine/internal/adapter/tmx"
	"tmxmine/internal/domain"
)

type fakeIterator struct {
	pairs []domain.Pair
	i     int
}

func (f *fakeIterator) Next() (domain.Pair, bool, error) {
	if f.i >= len(f.pairs) {
		return domain.Pair{}, false, nil
	}
	p := f.pairs[f.i]
	f.i++
	return p, true, nil
}

func (f *fakeIterator) Close() error { return nil }

type fakeRow struct {
	source, target, keywords string
}

type fakeSink struct {
	rows []fakeRow
}

func (f *fakeSink) WriteRow(source, target, matchedKeywords string) error {
	f.rows = append(f.rows, fakeRow{source, target, matchedKeywords})
	return nil
}

func (f *fakeSink) Path() string { return "fake.csv" }

func (f *fakeSink) Close() error { return nil }

func extract(t *testing.T, pairs []domain.Pair, opts domain.FilterOptions) (*domain.ExtractionResult, *fakeSink) {
	t.Helper()
	snk := &fakeSink{}
	uc := NewExtractUseCase(telemetry.Nop{}, 0)
	res, err := uc.Extract(&fakeIterator{pairs: pairs}, snk, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res, snk
}

func TestExtract_CaseInsensitive(t *testing.T) {
	pairs := []domain.Pair{{Source: "hemen euskara dago", Target: "aquí hay euskera"}}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"Euskara"},
		Scope:    domain.ScopeSource,
	})
	if res.MatchedUnits != 1 {
		t.Errorf("expected case-insensitive match, got %d matched units", res.MatchedUnits)
	}
	if res.KeywordCounts["Euskara"] != 1 {
		t.Errorf("expected count keyed by original casing, got %v", res.KeywordCounts)
	}
}

func TestExtract_CaseSensitive(t *testing.T) {
	pairs := []domain.Pair{{Source: "hemen euskara dago", Target: "aquí hay euskera"}}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords:      []string{"Euskara"},
		CaseSensitive: true,
		Scope:         domain.ScopeSource,
	})
	if res.MatchedUnits != 0 {
		t.Errorf("expected no case-sensitive match, got %d matched units", res.MatchedUnits)
	}
}

func TestExtract_CountsOncePerUnit(t *testing.T) {
	pairs := []domain.Pair{{Source: "foo foo foo", Target: "bar"}}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"foo"},
		Scope:    domain.ScopeSource,
	})
	if res.KeywordCounts["foo"] != 1 {
		t.Errorf("expected a keyword to count once per unit, got %d", res.KeywordCounts["foo"])
	}
}

func TestExtract_BothScopeBoundary(t *testing.T) {
	// Both-scope search concatenates with a separating space, so a
	// keyword spanning the source/target boundary must not match.
	pairs := []domain.Pair{{Source: "ends in foo", Target: "bar starts"}}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"foobar"},
		Scope:    domain.ScopeBoth,
	})
	if res.MatchedUnits != 0 {
		t.Errorf("expected no match across the boundary, got %d matched units", res.MatchedUnits)
	}

	res, _ = extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"foo bar"},
		Scope:    domain.ScopeBoth,
	})
	if res.MatchedUnits != 1 {
		t.Errorf("expected the separating space to be searchable, got %d matched units", res.MatchedUnits)
	}
}

func TestExtract_ScopeSelectsSide(t *testing.T) {
	pairs := []domain.Pair{{Source: "kaixo", Target: "hola"}}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"hola"},
		Scope:    domain.ScopeSource,
	})
	if res.MatchedUnits != 0 {
		t.Errorf("source scope must not search the target text")
	}

	res, _ = extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"hola"},
		Scope:    domain.ScopeTarget,
	})
	if res.MatchedUnits != 1 {
		t.Errorf("target scope must search the target text")
	}
}

func TestExtract_DuplicateKeywordsCountIndependently(t *testing.T) {
	pairs := []domain.Pair{{Source: "kaixo mundua", Target: "hola mundo"}}

	res, snk := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"kaixo", "kaixo"},
		Scope:    domain.ScopeSource,
	})
	if res.KeywordCounts["kaixo"] != 2 {
		t.Errorf("expected each list occurrence to count, got %d", res.KeywordCounts["kaixo"])
	}
	if len(snk.rows) != 1 || snk.rows[0].keywords != "kaixo|kaixo" {
		t.Errorf("expected the joined keywords to repeat, got %+v", snk.rows)
	}
}

func TestExtract_CountInvariants(t *testing.T) {
	pairs := []domain.Pair{
		{Source: "kaixo lagun", Target: "hola amigo"},
		{Source: "agur lagun", Target: "adiós amigo"},
		{Source: "bat bi hiru", Target: "uno dos tres"},
	}

	res, _ := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"lagun", "amigo", "kaixo"},
		Scope:    domain.ScopeBoth,
	})

	if res.MatchedUnits > res.TotalUnits {
		t.Errorf("matched %d > total %d", res.MatchedUnits, res.TotalUnits)
	}
	for kw, n := range res.KeywordCounts {
		if n > res.MatchedUnits {
			t.Errorf("keyword %q count %d > matched units %d", kw, n, res.MatchedUnits)
		}
	}
	if res.TotalUnits != 3 || res.MatchedUnits != 2 {
		t.Errorf("expected 2/3 matched, got %d/%d", res.MatchedUnits, res.TotalUnits)
	}
	// A unit may match several keywords, so the counts can sum past
	// matched units.
	sum := 0
	for _, n := range res.KeywordCounts {
		sum += n
	}
	if sum <= res.MatchedUnits {
		t.Errorf("expected overlapping keyword counts to exceed matched units, sum=%d", sum)
	}
}

func TestExtract_RowOrderAndContent(t *testing.T) {
	pairs := []domain.Pair{
		{Source: "kaixo lagun", Target: "hola amigo"},
		{Source: "bat bi", Target: "uno dos"},
		{Source: "agur", Target: "adiós"},
	}

	_, snk := extract(t, pairs, domain.FilterOptions{
		Keywords: []string{"agur", "kaixo"},
		Scope:    domain.ScopeSource,
	})

	if len(snk.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(snk.rows))
	}
	if snk.rows[0].source != "kaixo lagun" || snk.rows[0].keywords != "kaixo" {
		t.Errorf("unexpected first row: %+v", snk.rows[0])
	}
	if snk.rows[1].source != "agur" || snk.rows[1].keywords != "agur" {
		t.Errorf("unexpected second row: %+v", snk.rows[1])
	}
}

type recordingTelemetry struct {
	progress [][2]int
	summary  [][2]int
}

func (r *recordingTelemetry) Progress(units, matches int) {
	r.progress = append(r.progress, [2]int{units, matches})
}

func (r *recordingTelemetry) Summary(matched, total int) {
	r.summary = append(r.summary, [2]int{matched, total})
}

func TestExtract_ProgressObservations(t *testing.T) {
	pairs := make([]domain.Pair, 5)
	for i := range pairs {
		pairs[i] = domain.Pair{Source: "kaixo", Target: "hola"}
	}

	tel := &recordingTelemetry{}
	uc := NewExtractUseCase(tel, 2)
	_, err := uc.Extract(&fakeIterator{pairs: pairs}, &fakeSink{}, domain.FilterOptions{
		Keywords: []string{"kaixo"},
		Scope:    domain.ScopeSource,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(tel.progress) != 2 {
		t.Fatalf("expected progress at units 2 and 4, got %v", tel.progress)
	}
	if tel.progress[0] != [2]int{2, 2} || tel.progress[1] != [2]int{4, 4} {
		t.Errorf("unexpected progress observations: %v", tel.progress)
	}
	if len(tel.summary) != 1 || tel.summary[0] != [2]int{5, 5} {
		t.Errorf("unexpected summary: %v", tel.summary)
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<tmx version="1.4"><header/><body>
  <tu>
    <tuv xml:lang="eu"><seg>Euskal Herria da</seg></tuv>
    <tuv xml:lang="es"><seg>Es el País Vasco</seg></tuv>
  </tu>
  <tu>
    <tuv xml:lang="eu"><seg>Kaixo lagun</seg></tuv>
    <tuv xml:lang="es"><seg>Hola amigo</seg></tuv>
  </tu>
  <tu>
    <tuv xml:lang="eu"><seg>iturririk gabe</seg></tuv>
  </tu>
</body></tmx>`

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "corpus.tmx")
	if err := os.WriteFile(input, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(tmpDir, "out", "matches.csv")

	it, err := tmx.NewIterator(input, "eu", "es")
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	snk, err := sink.NewCSVSink(output, "eu", "es")
	if err != nil {
		t.Fatal(err)
	}

	uc := NewExtractUseCase(telemetry.Nop{}, 0)
	res, err := uc.Extract(it, snk, domain.FilterOptions{
		Keywords: []string{"herria", "hola"},
		Scope:    domain.ScopeBoth,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := snk.Close(); err != nil {
		t.Fatal(err)
	}

	if res.TotalUnits != 2 {
		t.Errorf("expected totalUnits=2, got %d", res.TotalUnits)
	}
	if res.MatchedUnits != 2 {
		t.Errorf("expected matchedUnits=2, got %d", res.MatchedUnits)
	}
	if res.KeywordCounts["herria"] != 1 || res.KeywordCounts["hola"] != 1 {
		t.Errorf("unexpected keyword counts: %v", res.KeywordCounts)
	}
	if res.OutputPath != output {
		t.Errorf("expected output path %s, got %s", output, res.OutputPath)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Source (eu)" || records[0][1] != "Target (es)" || records[0][2] != "Matched_Keywords" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Euskal Herria da" || records[1][1] != "Es el País Vasco" || records[1][2] != "herria" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][0] != "Kaixo lagun" || records[2][1] != "Hola amigo" || records[2][2] != "hola" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}
