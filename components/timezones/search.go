package timezones

import (
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

// Option is one zone offered to the picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

// Search returns zones containing query, case-insensitively, with prefix
// matches first. An empty query follows opts.EmptySearchMode.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(zones) <= limit {
				return append([]string{}, zones...)
			}
			return append([]string{}, zones[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions runs Search and labels each match with its offset at now,
// e.g. "Europe/Paris (UTC+02:00)", and the clock reading there.
func SearchOptions(zones []string, query string, limit int, opts Options, now time.Time) []Option {
	results := Search(zones, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, zone := range results {
		loc, err := wallclock.LoadLocation(zone)
		if err != nil {
			continue
		}
		out = append(out, Option{
			Value: zone,
			Label: zone + " (UTC" + now.In(loc).Format("-07:00") + ")",
			Time:  wallclock.FormatTime(now, loc),
		})
	}
	return out
}

type matchedZone struct {
	name     string
	isPrefix bool
}
