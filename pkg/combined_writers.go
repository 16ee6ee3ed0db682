package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers.
// A write succeeds as long as at least one writer accepted it.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var errs error
	accepted := 0
	for _, w := range cw.writers {
		if _, err := w.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		accepted++
	}

	if accepted == 0 && len(cw.writers) > 0 {
		return 0, errs
	}
	return len(p), nil
}
