package testsupport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

func TestMockClock(t *testing.T) {
	mock := MockClock(t, Noon)
	if !mock.Now().Equal(Noon) {
		t.Fatalf("got %v, want %v", mock.Now(), Noon)
	}
	if Noon.Weekday() != time.Saturday {
		t.Fatalf("reference instant must be a Saturday")
	}
}

func TestRecordingSink(t *testing.T) {
	sink := &RecordingSink{}
	if err := sink.Deliver(context.Background(), forms.Submission{Form: "a"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	got := sink.Submissions()
	got[0].Form = "mutated"
	if sink.Len() != 1 || sink.Submissions()[0].Form != "a" {
		t.Fatalf("unexpected submissions %+v", sink.Submissions())
	}

	sink.Err = errors.New("down")
	if err := sink.Deliver(context.Background(), forms.Submission{Form: "b"}); err == nil {
		t.Fatalf("expected delivery error")
	}
	if sink.Len() != 1 {
		t.Fatalf("failed delivery must not be recorded")
	}
}

func TestMustParseDefinition(t *testing.T) {
	def := MustParseDefinition(t, "name: x\nfields:\n  - name: a\n")
	if def.Name != "x" || def.Heading != "" || len(def.Table()) != 1 {
		t.Fatalf("unexpected definition %+v", def)
	}
}
