package recorder

import (
	"context"
	"errors"

	"CrossSentinel/internal/model"
)

// MultiRecorder fans a scan out to every configured backend. One backend
// failing does not stop the others; errors are joined.
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder returns a NoopRecorder for no backends and the backend
// itself for exactly one.
func NewMultiRecorder(recorders ...Recorder) Recorder {
	switch len(recorders) {
	case 0:
		return NewNoopRecorder()
	case 1:
		return recorders[0]
	}
	return &MultiRecorder{recorders: recorders}
}

func (m *MultiRecorder) RecordScan(ctx context.Context, r *model.ScanResult) error {
	var errs []error
	for _, rec := range m.recorders {
		if err := rec.RecordScan(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiRecorder) Close() error {
	var errs []error
	for _, rec := range m.recorders {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
