package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-widgetdemo/pkg/validation"
)

// JSDateLayout matches Date.prototype.toDateString output.
const JSDateLayout = "Mon Jan 02 2006"

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)(?:\|([a-z]+))?\}`)

// Summarize renders def.Summary against values, one line per entry. Lines
// use {field} placeholders with optional formatters: {field|int} normalises
// an integer and {field|datestring} renders a date like "Sat Jun 01 2024"
// (blank when unset). It returns "" when the definition has no summary.
func Summarize(def Definition, values Values) string {
	if len(def.Summary) == 0 {
		return ""
	}
	lines := make([]string, 0, len(def.Summary))
	for _, line := range def.Summary {
		lines = append(lines, expandLine(line, values))
	}
	return strings.Join(lines, "\n")
}

func expandLine(line string, values Values) string {
	return placeholderPattern.ReplaceAllStringFunc(line, func(token string) string {
		match := placeholderPattern.FindStringSubmatch(token)
		raw := values[match[1]]
		switch match[2] {
		case "int":
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				return strconv.Itoa(n)
			}
			return raw
		case "datestring":
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				return ""
			}
			if d, err := time.Parse(validation.DateLayout, trimmed); err == nil {
				return d.Format(JSDateLayout)
			}
			return raw
		default:
			return raw
		}
	})
}
