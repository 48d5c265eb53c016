// Package summary groups build and cook log messages by the asset that was
// being loaded when they were emitted.
package summary

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind classifies a log line.
type Kind int

const (
	Notification Kind = iota
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Notification:
		return "notification"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// UnknownLocation names the summary collecting messages seen before any
// asset was loaded.
const UnknownLocation = "Unknown location"

const assetGroup = "asset"

var ErrMissingAssetGroup = errors.New("load asset pattern has no (?P<asset>...) group")

var defaultLoadAssetPatterns = []string{
	`.*\[\d+/\d+\] Loading [.|/]*(?:Content/)?(?P<asset>.*)\.\.\.$`,
}

// DefaultLoadAssetPatterns returns the patterns recognizing the editor's
// "[n/m] Loading <asset>..." lines.
func DefaultLoadAssetPatterns() []*regexp.Regexp {
	patterns, err := CompileLoadAssetPatterns(defaultLoadAssetPatterns)
	if err != nil {
		panic(err)
	}
	return patterns
}

// CompileLoadAssetPatterns compiles and validates load asset patterns.
func CompileLoadAssetPatterns(exprs []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("load asset pattern %q: %w", expr, err)
		}
		if err := checkAssetGroup(re); err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

func checkAssetGroup(re *regexp.Regexp) error {
	if re.SubexpIndex(assetGroup) < 0 {
		return fmt.Errorf("%w: %s", ErrMissingAssetGroup, re.String())
	}
	return nil
}

// Summarizer attributes warnings and errors to the asset in context and
// renders them grouped by asset. It is not safe for concurrent use.
type Summarizer struct {
	hints        *HintTable
	loadPatterns []*regexp.Regexp

	assets  map[string]*AssetSummary
	order   []*AssetSummary
	current *AssetSummary
	unknown *AssetSummary
}

// NewSummarizer creates a summarizer. hints may be nil. Without load
// patterns the defaults are used.
func NewSummarizer(hints *HintTable, loadPatterns ...*regexp.Regexp) (*Summarizer, error) {
	if len(loadPatterns) == 0 {
		loadPatterns = DefaultLoadAssetPatterns()
	}
	for _, re := range loadPatterns {
		if err := checkAssetGroup(re); err != nil {
			return nil, err
		}
	}
	if hints == nil {
		hints = &HintTable{}
	}
	return &Summarizer{
		hints:        hints,
		loadPatterns: loadPatterns,
		assets:       make(map[string]*AssetSummary),
		unknown:      newAssetSummary(UnknownLocation),
	}, nil
}

// Ingest processes one line of output.
func (s *Summarizer) Ingest(line string, kind Kind) {
	current := s.UpdateAsset(line)
	switch kind {
	case Warning:
		msg, _ := s.hints.Rewrite(line)
		current.AddWarning(msg)
	case Error:
		msg, _ := s.hints.Rewrite(line)
		current.AddError(msg)
	}
}

func (s *Summarizer) AddNotification(line string) { s.Ingest(line, Notification) }
func (s *Summarizer) AddWarning(line string)      { s.Ingest(line, Warning) }
func (s *Summarizer) AddError(line string)        { s.Ingest(line, Error) }

// UpdateAsset switches the context to the asset loaded by line, if any,
// and returns the summary now in context.
func (s *Summarizer) UpdateAsset(line string) *AssetSummary {
	for _, re := range s.loadPatterns {
		m := re.FindStringSubmatchIndex(line)
		if m == nil || m[0] != 0 {
			continue
		}
		i := re.SubexpIndex(assetGroup)
		name := ""
		if m[2*i] >= 0 {
			name = line[m[2*i]:m[2*i+1]]
		}
		asset, ok := s.assets[name]
		if !ok {
			asset = newAssetSummary(name)
			s.assets[name] = asset
			s.order = append(s.order, asset)
		}
		s.current = asset
		return asset
	}
	return s.Current()
}

// Current returns the summary in context, the unknown location when no
// asset was loaded yet.
func (s *Summarizer) Current() *AssetSummary {
	if s.current != nil {
		return s.current
	}
	return s.unknown
}

// Reset forgets the asset in context. Recorded messages are kept.
func (s *Summarizer) Reset() {
	s.current = nil
}

// Assets returns every summary in the order assets were first seen,
// followed by the unknown location.
func (s *Summarizer) Assets() []*AssetSummary {
	out := make([]*AssetSummary, 0, len(s.order)+1)
	out = append(out, s.order...)
	return append(out, s.unknown)
}

// Totals counts recorded errors and warnings, and the assets holding any.
func (s *Summarizer) Totals() (errs, warnings, assets int) {
	for _, a := range s.Assets() {
		if a.Empty() {
			continue
		}
		errs += len(a.errors.items)
		warnings += len(a.warnings.items)
		assets++
	}
	return
}
