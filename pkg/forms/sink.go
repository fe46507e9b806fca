package forms

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sink receives valid submissions.
type Sink interface {
	Deliver(ctx context.Context, submission Submission) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, submission Submission) error

// Deliver calls fn.
func (fn SinkFunc) Deliver(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// LogSink records submissions at info level.
func LogSink(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SinkFunc(func(_ context.Context, s Submission) error {
		fields := make([]zap.Field, 0, len(s.Values)+1)
		fields = append(fields, zap.String("form", s.Form))
		for _, name := range sortedKeys(s.Values) {
			fields = append(fields, zap.String("value."+name, s.Values[name]))
		}
		logger.Info("form submitted", fields...)
		return nil
	})
}

// WriterSink prints the submission summary, or the sorted values when the
// form has no summary.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(ctx context.Context, s Submission) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Summary != "" {
			_, err := fmt.Fprintln(w, s.Summary)
			return err
		}
		for _, name := range sortedKeys(s.Values) {
			if _, err := fmt.Fprintf(w, "%s: %s\n", name, s.Values[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sinks fans a submission out to every sink, combining their errors.
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, s Submission) error {
		var err error
		for _, sink := range sinks {
			if sink == nil {
				continue
			}
			err = multierr.Append(err, sink.Deliver(ctx, s))
		}
		return err
	})
}

func sortedKeys(values Values) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
