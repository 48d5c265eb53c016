package summary

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sirupsen/logrus"
)

// HintSpec is the uncompiled form of a hint: a message template and the
// patterns whose named groups fill it.
type HintSpec struct {
	Format   string
	Patterns []string
}

// Hint is a compiled HintSpec.
type Hint struct {
	Format   string
	Patterns []*regexp2.Regexp
}

// HintTable rewrites raw messages into friendlier ones. Hints are tried in
// order and the first matching pattern wins.
type HintTable struct {
	hints []Hint
}

// hintMatchTimeout bounds a single backtracking match on a user pattern.
const hintMatchTimeout = 250 * time.Millisecond

// CompileHintPattern compiles a hint pattern. Python style named groups
// are accepted.
func CompileHintPattern(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(rewriteBackrefs(rewritePythonGroups(expr)), regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = hintMatchTimeout
	return re, nil
}

// rewritePythonGroups turns (?P<name> into (?<name> and (?P=name) into
// \k<name). Escaped parentheses are left alone.
func rewritePythonGroups(expr string) string {
	var sb strings.Builder
	for i := 0; i < len(expr); i++ {
		switch {
		case expr[i] == '\\' && i+1 < len(expr):
			sb.WriteString(expr[i : i+2])
			i++
		case strings.HasPrefix(expr[i:], "(?P<"):
			sb.WriteString("(?<")
			i += 3
		case strings.HasPrefix(expr[i:], "(?P="):
			sb.WriteString(`\k<`)
			i += 3
		default:
			sb.WriteByte(expr[i])
		}
	}
	return sb.String()
}

// rewriteBackrefs turns the \k<name) left over from (?P=name) into \k<name>.
func rewriteBackrefs(expr string) string {
	var sb strings.Builder
	for {
		i := strings.Index(expr, `\k<`)
		if i < 0 {
			sb.WriteString(expr)
			return sb.String()
		}
		j := strings.IndexAny(expr[i+3:], ">)")
		if j < 0 {
			sb.WriteString(expr)
			return sb.String()
		}
		sb.WriteString(expr[:i+3+j])
		sb.WriteByte('>')
		expr = expr[i+3+j+1:]
	}
}

// NewHintTable compiles specs. Patterns that do not compile are logged and
// left out, a template without any valid pattern never matches.
func NewHintTable(specs []HintSpec) *HintTable {
	t := &HintTable{hints: make([]Hint, 0, len(specs))}
	for _, spec := range specs {
		hint := Hint{Format: spec.Format}
		for _, expr := range spec.Patterns {
			re, err := CompileHintPattern(expr)
			if err != nil {
				logrus.Warnf("Error while compiling pattern %s: %s", expr, err)
				continue
			}
			hint.Patterns = append(hint.Patterns, re)
		}
		t.hints = append(t.hints, hint)
	}
	return t
}

// Len returns the number of templates in the table.
func (t *HintTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.hints)
}

// Hints returns the compiled hints in table order.
func (t *HintTable) Hints() []Hint {
	if t == nil {
		return nil
	}
	return t.hints
}

// Rewrite returns the templated message of the first pattern matching msg.
// When nothing matches, or the matching template cannot be filled, msg is
// returned unchanged and ok is false.
func (t *HintTable) Rewrite(msg string) (out string, ok bool) {
	if t == nil {
		return msg, false
	}
	for _, hint := range t.hints {
		for _, re := range hint.Patterns {
			groups, matched := matchAtStart(re, msg)
			if !matched {
				continue
			}
			formatted, err := Format(hint.Format, groups)
			if err != nil {
				logrus.WithField("message", msg).Debugf("Hint not applied: %s", err)
				return msg, false
			}
			return formatted, true
		}
	}
	return msg, false
}

func matchAtStart(re *regexp2.Regexp, msg string) (map[string]string, bool) {
	m, err := re.FindStringMatch(msg)
	if err != nil {
		logrus.Debugf("Hint pattern %s: %s", re.String(), err)
		return nil, false
	}
	if m == nil || m.Index != 0 {
		return nil, false
	}
	groups := make(map[string]string)
	for _, name := range re.GetGroupNames() {
		if isDigits(name) {
			continue
		}
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			groups[name] = ""
			continue
		}
		groups[name] = g.String()
	}
	return groups, true
}
