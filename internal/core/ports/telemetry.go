package ports

import (
	"context"
	"io"

	"github.com/pinfile/pinfile/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer records the progress of audit work as vertices.
type Tracer interface {
	// Record starts recording a new vertex for a unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

type vertexContextKey struct{}

// ContextWithVertex returns a context carrying the given vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexContextKey{}).(Vertex)
	return v
}

// Vertex represents one manifest audit in flight.
type Vertex interface {
	// Stdout returns a writer for the vertex's output stream.
	Stdout() io.Writer

	// Log records a log message associated with this vertex.
	Log(level domain.LogLevel, msg string)

	// Complete marks the vertex as finished, with err non-nil on failure.
	Complete(err error)
}
