package summary

import (
	"fmt"
	"regexp"
)

var (
	defaultErrorPatterns = []string{
		`(?:^|:\s)(?:Error|ERROR|Fatal error)\s*:`,
		`\b(?:fatal )?error(?: [A-Z]+\d+)?\s*:`,
	}
	defaultWarningPatterns = []string{
		`(?:^|:\s)(?:Warning|WARNING)\s*:`,
		`\bwarning(?: [A-Z]+\d+)?\s*:`,
	}
)

// Classifier decides the Kind of a raw output line. Error patterns are
// tried before warning patterns.
type Classifier struct {
	errors   []*regexp.Regexp
	warnings []*regexp.Regexp
}

// DefaultClassifier recognizes Unreal log categories and compiler
// diagnostics.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(defaultErrorPatterns, defaultWarningPatterns)
	if err != nil {
		panic(err)
	}
	return c
}

// NewClassifier compiles the given patterns, empty lists fall back to the
// defaults.
func NewClassifier(errorPatterns, warningPatterns []string) (*Classifier, error) {
	if len(errorPatterns) == 0 {
		errorPatterns = defaultErrorPatterns
	}
	if len(warningPatterns) == 0 {
		warningPatterns = defaultWarningPatterns
	}
	errs, err := compileAll(errorPatterns)
	if err != nil {
		return nil, fmt.Errorf("error pattern: %w", err)
	}
	warnings, err := compileAll(warningPatterns)
	if err != nil {
		return nil, fmt.Errorf("warning pattern: %w", err)
	}
	return &Classifier{errors: errs, warnings: warnings}, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func (c *Classifier) Classify(line string) Kind {
	for _, re := range c.errors {
		if re.MatchString(line) {
			return Error
		}
	}
	for _, re := range c.warnings {
		if re.MatchString(line) {
			return Warning
		}
	}
	return Notification
}
