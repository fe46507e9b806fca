package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

//go:embed data/zones.txt
var dataFS embed.FS

const defaultListPath = "data/zones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded zone list.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultZones, defaultErr = LoadZones(f)
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultZones...), nil
}

// LoadZones reads one zone per line, skipping blanks and # comments. The
// result is sorted and deduplicated; a name the tz database does not know
// is an error.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 128)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		if _, err := wallclock.LoadLocation(line); err != nil {
			return nil, fmt.Errorf("timezones: %w", err)
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return zones, nil
}
