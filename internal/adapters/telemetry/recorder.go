// Package telemetry records audit progress as Progrock vertices.
package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/pinfile/pinfile/internal/core/ports"
)

// Recorder implements ports.Tracer using the Progrock library. Vertices
// accumulate on a tape while commands run; Close renders the tape to the
// output writer so the recorded progress reaches the terminal.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	tape *progrock.Tape
	out  io.Writer
}

var _ ports.Tracer = (*Recorder)(nil)

// New creates a Recorder backed by a tape that renders to stderr on Close.
func New() *Recorder {
	r := NewRecorder(progrock.NewTape())
	r.out = os.Stderr
	return r
}

// NewRecorder creates a Recorder with the given writer. When w is a tape,
// Close renders its contents to the output writer.
func NewRecorder(w progrock.Writer) *Recorder {
	r := &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
	if tape, ok := w.(*progrock.Tape); ok {
		r.tape = tape
	}
	return r
}

// SetOutput redirects where the tape is rendered on Close.
func (r *Recorder) SetOutput(w io.Writer) {
	r.out = w
}

// Record starts recording a new vertex for a unit of work.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close ends the recording session and renders the tape.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if r.tape == nil || r.out == nil {
		return nil
	}
	return r.tape.Render(r.out, progrock.DefaultUI())
}
