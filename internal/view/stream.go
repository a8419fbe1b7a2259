package view

import (
	"fmt"
	"io"

	"github.com/limaJavier/eligibility/internal/version"
)

// Stream provides basic output operations wrapping an io.Writer.
type Stream struct {
	Writer io.Writer
}

func NewStream(w io.Writer) *Stream {
	return &Stream{
		Writer: w,
	}
}

func (s *Stream) Println(args ...any) {
	fmt.Fprintln(s.Writer, args...)
}

func (s *Stream) Printf(format string, args ...any) {
	fmt.Fprintf(s.Writer, format, args...)
}

func (s *Stream) PrintVersion() {
	version.Fprint(s.Writer)
}
