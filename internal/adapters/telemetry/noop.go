package telemetry

import (
	"context"
	"io"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// NoOp is a Tracer that records nothing. Used when progress output is
// suppressed.
type NoOp struct{}

var _ ports.Tracer = NoOp{}

func (NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

func (NoOp) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer           { return io.Discard }
func (noopVertex) Log(domain.LogLevel, string) {}
func (noopVertex) Complete(error)              {}
