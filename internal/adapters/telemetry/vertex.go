package telemetry

import (
	"fmt"
	"io"

	"github.com/vito/progrock"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer for the vertex's output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log records a log message associated with this vertex.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex as finished, with err non-nil on failure.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
