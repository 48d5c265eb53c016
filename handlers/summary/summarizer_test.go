package summary_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/nimp-build/nimp/handlers/summary"
)

var missingReference = []summary.HintSpec{{
	Format:   "Missing reference: {asset}",
	Patterns: []string{`Can't find file '(?P<asset>[^']*)'.`},
}}

func render(t *testing.T, s *summary.Summarizer) string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func newSummarizer(t *testing.T, specs []summary.HintSpec, patterns ...*regexp.Regexp) *summary.Summarizer {
	t.Helper()
	s, err := summary.NewSummarizer(summary.NewHintTable(specs), patterns...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSummarizerScenario(t *testing.T) {
	s := newSummarizer(t, missingReference)
	s.Ingest("[1/2] Loading ../Content/Foo...", summary.Notification)
	s.Ingest("Can't find file 'Bar'.", summary.Error)
	s.Ingest("Some warning text", summary.Warning)

	want := "Foo :\n" +
		" * ERROR   : Missing reference: Bar\n" +
		" * WARNING : Some warning text\n" +
		"\n"
	if got := render(t, s); got != want {
		t.Fatalf("report mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}

	stray := newSummarizer(t, missingReference)
	stray.Ingest("Stray error", summary.Error)
	want = "Unknown location :\n * ERROR   : Stray error\n\n"
	if got := render(t, stray); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMessagesWithoutLoadLineGoToUnknown(t *testing.T) {
	s := newSummarizer(t, nil)
	lines := []struct {
		text string
		kind summary.Kind
	}{
		{"first warning", summary.Warning},
		{"just noise", summary.Notification},
		{"first error", summary.Error},
		{"second warning", summary.Warning},
	}
	for _, l := range lines {
		s.Ingest(l.text, l.kind)
		if got := s.Current().Name(); got != summary.UnknownLocation {
			t.Fatalf("current asset after %q = %q", l.text, got)
		}
	}

	assets := s.Assets()
	if len(assets) != 1 {
		t.Fatalf("expected only the unknown location, got %d summaries", len(assets))
	}
	unknown := assets[0]
	if got := unknown.Errors(); len(got) != 1 || got[0] != "first error" {
		t.Errorf("errors = %v", got)
	}
	if got := unknown.Warnings(); len(got) != 2 || got[0] != "first warning" || got[1] != "second warning" {
		t.Errorf("warnings = %v", got)
	}
}

func TestFirstLoadPatternWins(t *testing.T) {
	patterns, err := summary.CompileLoadAssetPatterns([]string{
		`Loading (?P<asset>\w+)`,
		`Loading (?P<asset>\w)`,
	})
	if err != nil {
		t.Fatal(err)
	}
	s := newSummarizer(t, nil, patterns...)
	if got := s.UpdateAsset("Loading Abc").Name(); got != "Abc" {
		t.Fatalf("asset = %q, want Abc", got)
	}
}

func TestLoadPatternsMatchAtLineStart(t *testing.T) {
	patterns, err := summary.CompileLoadAssetPatterns([]string{`Loading (?P<asset>\w+)`})
	if err != nil {
		t.Fatal(err)
	}
	s := newSummarizer(t, nil, patterns...)
	if got := s.UpdateAsset("LogInit: Loading Abc").Name(); got != summary.UnknownLocation {
		t.Fatalf("pattern matched mid-line, asset = %q", got)
	}
}

func TestAssetContextPersists(t *testing.T) {
	s := newSummarizer(t, nil)
	s.AddNotification("[1/3] Loading ../Content/Foo...")
	s.AddNotification("[2/3] Loading ../Content/Maps/Bar...")
	s.AddNotification("LogStreaming: Display: nothing to see")
	s.AddError("broken")

	if got := s.Current().Name(); got != "Maps/Bar" {
		t.Fatalf("current = %q", got)
	}

	// Coming back to a known asset reuses its summary.
	foo := s.UpdateAsset("[3/3] Loading ../Content/Foo...")
	foo.AddWarning("late")
	s.AddWarning("late")
	if got := foo.Warnings(); len(got) != 1 {
		t.Fatalf("warnings = %v", got)
	}
	if n := len(s.Assets()); n != 3 {
		t.Fatalf("expected 2 assets and the unknown location, got %d summaries", n)
	}

	s.Reset()
	if got := s.Current().Name(); got != summary.UnknownLocation {
		t.Fatalf("current after reset = %q", got)
	}
	if got := render(t, s); !strings.Contains(got, "Maps/Bar :\n * ERROR   : broken\n") {
		t.Fatalf("reset dropped messages:\n%s", got)
	}
}

func TestDuplicateMessagesRenderedOnce(t *testing.T) {
	s := newSummarizer(t, nil)
	s.AddNotification("[1/1] Loading ../Content/Foo...")
	s.AddError("same error")
	s.AddError("same error")
	s.AddWarning("same error")

	got := render(t, s)
	if n := strings.Count(got, " * ERROR   : same error\n"); n != 1 {
		t.Fatalf("error rendered %d times:\n%s", n, got)
	}
	if n := strings.Count(got, " * WARNING : same error\n"); n != 1 {
		t.Fatalf("warning rendered %d times:\n%s", n, got)
	}
}

func TestHintPrecedence(t *testing.T) {
	s := newSummarizer(t, []summary.HintSpec{
		{Format: "first: {asset}", Patterns: []string{`Can't find file '(?P<asset>[^']*)'.`}},
		{Format: "second: {asset}", Patterns: []string{`Can't (?P<asset>.*)`}},
	})
	s.AddError("Can't find file 'Bar'.")

	got := render(t, s)
	if !strings.Contains(got, " * ERROR   : first: Bar\n") || strings.Contains(got, "second") {
		t.Fatalf("unexpected report:\n%s", got)
	}
}

func TestAssetsWithoutMessagesAreOmitted(t *testing.T) {
	s := newSummarizer(t, nil)
	s.AddNotification("[1/2] Loading ../Content/Quiet...")
	s.AddNotification("[2/2] Loading ../Content/Loud...")
	s.AddWarning("noise")

	want := "Loud :\n * WARNING : noise\n\n"
	if got := render(t, s); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	run := func() string {
		s := newSummarizer(t, missingReference)
		s.AddWarning("before anything")
		for _, asset := range []string{"Zeta", "Alpha", "Mid"} {
			s.AddNotification("[1/3] Loading ../Content/" + asset + "...")
			for _, msg := range []string{"w3", "w1", "w2"} {
				s.AddWarning(asset + " " + msg)
			}
			s.AddError("Can't find file '" + asset + "Ref'.")
		}
		return render(t, s)
	}
	first := run()
	for i := 0; i < 10; i++ {
		if got := run(); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
	if !strings.HasPrefix(first, "Zeta :\n * ERROR   : Missing reference: ZetaRef\n * WARNING : Zeta w3\n") {
		t.Fatalf("assets or messages out of insertion order:\n%s", first)
	}
	if !strings.HasSuffix(first, "Unknown location :\n * WARNING : before anything\n\n") {
		t.Fatalf("unknown location not last:\n%s", first)
	}
}

func TestMissingAssetGroup(t *testing.T) {
	_, err := summary.CompileLoadAssetPatterns([]string{`Loading (?P<name>\w+)`})
	if !errors.Is(err, summary.ErrMissingAssetGroup) {
		t.Fatalf("CompileLoadAssetPatterns error = %v", err)
	}

	_, err = summary.NewSummarizer(nil, regexp.MustCompile(`Loading (\w+)`))
	if !errors.Is(err, summary.ErrMissingAssetGroup) {
		t.Fatalf("NewSummarizer error = %v", err)
	}
}

func TestTotals(t *testing.T) {
	s := newSummarizer(t, nil)
	s.AddError("e0")
	s.AddNotification("[1/2] Loading ../Content/A...")
	s.AddError("e1")
	s.AddError("e2")
	s.AddWarning("w1")
	s.AddNotification("[2/2] Loading ../Content/B...")

	errs, warnings, assets := s.Totals()
	if errs != 3 || warnings != 1 || assets != 2 {
		t.Fatalf("Totals() = %d, %d, %d", errs, warnings, assets)
	}
}

func TestRenderColor(t *testing.T) {
	s := newSummarizer(t, nil)
	s.AddError("boom")
	var buf bytes.Buffer
	if err := s.RenderColor(&buf); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "boom") {
		t.Fatalf("no colour in %q", got)
	}
}
