package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the Fingerprinter Graft node.
	HasherNodeID graft.ID = "adapter.fingerprinter"
	// WriterNodeID is the unique identifier for the FileWriter Graft node.
	WriterNodeID graft.ID = "adapter.file_writer"
)

func init() {
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Fingerprinter, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.FileWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileWriter, error) {
			return NewAtomicWriter(), nil
		},
	})
}
