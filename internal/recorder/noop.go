package recorder

import (
	"context"

	"CrossSentinel/internal/model"
)

// NoopRecorder is used when no history backend is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ context.Context, _ *model.ScanResult) error { return nil }
func (n *NoopRecorder) Close() error                                            { return nil }
