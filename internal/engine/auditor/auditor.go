// Package auditor runs manifest audits, concurrently when given
// multiple files.
package auditor

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// Options controls a single audit run.
type Options struct {
	// Strict upgrades warning diagnostics to errors.
	Strict bool
}

// Result is the audit outcome for one manifest closure.
type Result struct {
	// Path is the manifest as given on the command line.
	Path string

	// Status is clean when the closure produced no error diagnostics.
	Status domain.AuditStatus

	// Diagnostics are the findings, post strict-mode upgrading.
	Diagnostics []domain.Diagnostic

	// Closure is every requirement across the manifest and its includes.
	Closure []domain.Requirement
}

// Auditor validates manifest closures.
type Auditor struct {
	loader ports.ManifestLoader
	tracer ports.Tracer
	log    ports.Logger
}

func New(loader ports.ManifestLoader, tracer ports.Tracer, log ports.Logger) *Auditor {
	return &Auditor{
		loader: loader,
		tracer: tracer,
		log:    log,
	}
}

// Audit loads and validates each manifest. Results come back in input
// order regardless of scheduling. The returned error is ErrAuditFailed
// when any manifest produced error diagnostics, or the load error when
// a manifest could not be read at all.
func (a *Auditor) Audit(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		group.Go(func() error {
			result, err := a.auditOne(ctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var failed int
	for _, result := range results {
		if result.Status == domain.AuditStatusFailed {
			failed++
		}
	}
	if failed > 0 {
		a.log.Warn(fmt.Sprintf("%d of %d manifests failed the audit", failed, len(paths)))
		return results, zerr.With(domain.ErrAuditFailed, "manifests", failed)
	}
	return results, nil
}

func (a *Auditor) auditOne(ctx context.Context, path string, opts Options) (Result, error) {
	_, vertex := a.tracer.Record(ctx, path)

	loaded, err := a.loader.Load(path)
	if err != nil {
		vertex.Complete(err)
		return Result{}, err
	}

	diags := loaded.Diagnostics
	if opts.Strict {
		diags = upgradeWarnings(diags)
	}

	for _, d := range diags {
		vertex.Log(severityLevel(d.Severity), d.String())
	}

	result := Result{
		Path:        path,
		Status:      domain.AuditStatusClean,
		Diagnostics: diags,
		Closure:     loaded.Graph.Closure(),
	}

	if domain.HasErrors(diags) {
		result.Status = domain.AuditStatusFailed
		vertex.Complete(zerr.With(domain.ErrAuditFailed, "path", path))
		return result, nil
	}

	fmt.Fprintf(vertex.Stdout(), "%d requirements\n", len(result.Closure))
	vertex.Complete(nil)
	return result, nil
}

// upgradeWarnings maps every warning diagnostic to an error.
func upgradeWarnings(diags []domain.Diagnostic) []domain.Diagnostic {
	upgraded := make([]domain.Diagnostic, len(diags))
	for i, d := range diags {
		if d.Severity == domain.SeverityWarning {
			d.Severity = domain.SeverityError
		}
		upgraded[i] = d
	}
	return upgraded
}

func severityLevel(s domain.Severity) domain.LogLevel {
	if s == domain.SeverityError {
		return domain.LogLevelError
	}
	return domain.LogLevelWarn
}
