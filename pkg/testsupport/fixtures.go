// Package testsupport holds fixtures shared by the widget tests.
package testsupport

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

// Noon is the reference instant of the widget tests: a Saturday, 14:00 in
// Paris.
var Noon = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// MockClock returns a mock clock set to at.
func MockClock(t testing.TB, at time.Time) *clock.Mock {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(at)
	return mock
}

// MustParseDefinition decodes and compiles a YAML form definition.
func MustParseDefinition(t testing.TB, doc string) forms.Definition {
	t.Helper()

	def, err := forms.ParseDefinition([]byte(doc))
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	def, err = forms.Compile(def)
	if err != nil {
		t.Fatalf("compile definition: %v", err)
	}
	return def
}

// RecordingSink keeps every delivered submission. Err, when set, is
// returned from Deliver instead of recording.
type RecordingSink struct {
	mu          sync.Mutex
	submissions []forms.Submission
	Err         error
}

// Deliver implements forms.Sink.
func (s *RecordingSink) Deliver(_ context.Context, sub forms.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.submissions = append(s.submissions, sub)
	return nil
}

// Submissions returns a copy of the recorded submissions.
func (s *RecordingSink) Submissions() []forms.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]forms.Submission(nil), s.submissions...)
}

// Len reports the number of recorded submissions.
func (s *RecordingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}
