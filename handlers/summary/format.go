package summary

import (
	"fmt"
	"strings"
)

// FormatError is returned when a hint template cannot be filled from the
// groups captured by its pattern.
type FormatError struct {
	Template string
	Field    string
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("hint template %q: field %q: %s", e.Template, e.Field, e.Reason)
	}
	return fmt.Sprintf("hint template %q: %s", e.Template, e.Reason)
}

// Format fills the {name} placeholders of template with values.
// "{{" and "}}" produce literal braces. Anything after ':' or '!' inside a
// placeholder is ignored.
func Format(template string, values map[string]string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", &FormatError{Template: template, Reason: "unclosed '{'"}
			}
			field := template[i+1 : i+1+end]
			if cut := strings.IndexAny(field, ":!"); cut >= 0 {
				field = field[:cut]
			}
			if field == "" || isDigits(field) {
				return "", &FormatError{Template: template, Field: field, Reason: "positional fields are not supported"}
			}
			value, ok := values[field]
			if !ok {
				return "", &FormatError{Template: template, Field: field, Reason: "no such group"}
			}
			sb.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", &FormatError{Template: template, Reason: "single '}'"}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
