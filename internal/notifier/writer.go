package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
)

// WriterSender prints messages instead of sending them. Used for dry runs.
type WriterSender struct {
	W io.Writer
}

func (s *WriterSender) Send(_ context.Context, text string) error {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "----- message -----\n%s\n-------------------\n", text)
	return err
}
