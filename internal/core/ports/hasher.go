package ports

import "github.com/pinfile/pinfile/internal/core/domain"

// Fingerprinter computes content fingerprints over requirement sets.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Fingerprinter interface {
	// Fingerprint computes a deterministic fingerprint of the requirement
	// closure. The result is independent of comments, blank lines and
	// declaration order.
	Fingerprint(reqs []domain.Requirement) string
}
