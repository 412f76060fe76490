// Package app implements the application layer for pinfile.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/adapters/manifest" //nolint:depguard // Manifest rewriting is wired in the app layer
	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
	"github.com/pinfile/pinfile/internal/engine/auditor"
	"github.com/pinfile/pinfile/internal/ui/report"
)

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	auditor  *auditor.Auditor
	index    ports.PackageIndex
	locks    ports.LockStore
	hasher   ports.Fingerprinter
	writer   ports.FileWriter
	pins     ports.PinChecker
	watcher  ports.Watcher
	logger   ports.Logger
	renderer *report.Renderer
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	aud *auditor.Auditor,
	index ports.PackageIndex,
	locks ports.LockStore,
	hasher ports.Fingerprinter,
	writer ports.FileWriter,
	pins ports.PinChecker,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		auditor:  aud,
		index:    index,
		locks:    locks,
		hasher:   hasher,
		writer:   writer,
		pins:     pins,
		watcher:  watcher,
		logger:   log,
		renderer: report.NewRenderer(),
	}
}

// CheckOptions configures the Check operation.
type CheckOptions struct {
	// Strict upgrades warning diagnostics to errors.
	Strict bool
}

// Check audits the given manifests and writes a diagnostic report to out.
// Returns domain.ErrAuditFailed when any manifest has error diagnostics.
func (a *App) Check(ctx context.Context, paths []string, opts CheckOptions, out io.Writer) error {
	results, err := a.auditor.Audit(ctx, paths, auditor.Options{Strict: opts.Strict})
	if results == nil {
		return zerr.Wrap(err, "failed to audit manifests")
	}

	var diags []domain.Diagnostic
	for _, result := range results {
		diags = append(diags, result.Diagnostics...)
	}
	a.renderer.Diagnostics(out, diags)
	a.renderer.Summary(out, len(paths), diags)

	return err
}

// FormatOptions configures the Format operation.
type FormatOptions struct {
	// Write replaces the file atomically instead of printing.
	Write bool

	// Check reports whether the file is already canonical without
	// touching it.
	Check bool
}

// Format renders the manifest at path in canonical form. The default
// prints the result to out; see FormatOptions for the other modes.
func (a *App) Format(_ context.Context, path string, opts FormatOptions, out io.Writer) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	formatted, err := manifest.Format(loaded.Root)
	if err != nil {
		return err
	}

	switch {
	case opts.Check:
		current, err := os.ReadFile(path) // #nosec G304 -- path comes from a CLI flag
		if err != nil {
			return zerr.Wrap(err, "failed to read manifest")
		}
		if bytes.Equal(current, formatted) {
			return nil
		}
		fmt.Fprintf(out, "%s is not formatted\n", path)
		return zerr.With(domain.ErrNotFormatted, "path", path)
	case opts.Write:
		if err := a.writer.WriteFile(path, formatted); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("formatted %s", path))
		return nil
	default:
		_, err = out.Write(formatted)
		return err
	}
}

// listEntry is the JSON shape of one listed requirement.
type listEntry struct {
	Name       string `json:"name"`
	Normalized string `json:"normalized"`
	Spec       string `json:"spec,omitzero"`
	Pinned     bool   `json:"pinned"`
}

// List writes every requirement of the manifest closure to out, one per
// line, sorted by normalized name. With asJSON set the output is a JSON
// array instead.
func (a *App) List(_ context.Context, path string, asJSON bool, out io.Writer) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	closure := loaded.Graph.Closure()
	sort.SliceStable(closure, func(i, j int) bool {
		return closure[i].Normalized() < closure[j].Normalized()
	})

	if !asJSON {
		for _, req := range closure {
			fmt.Fprintln(out, req.String())
		}
		return nil
	}

	entries := make([]listEntry, 0, len(closure))
	for _, req := range closure {
		entry := listEntry{
			Name:       req.Name.String(),
			Normalized: req.Normalized(),
			Pinned:     req.Pinned(),
		}
		if req.Spec != nil {
			entry.Spec = req.Spec.String()
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal requirements")
	}
	fmt.Fprintf(out, "%s\n", data)
	return nil
}

// Pin pins each named requirement, rewriting the manifest file that
// declares it. A bare name pins to the latest version published on the
// package index; "name==version" pins to the given version.
func (a *App) Pin(ctx context.Context, path string, names []string, out io.Writer) error {
	bare := make([]string, len(names))
	explicit := make(map[string]string, len(names))
	for i, arg := range names {
		name, wanted, found := strings.Cut(arg, "==")
		bare[i] = name
		if !found {
			continue
		}
		if _, err := domain.ParseVersion(wanted); err != nil {
			return zerr.With(err, "version", wanted)
		}
		explicit[domain.NormalizeName(name)] = wanted
	}

	return a.edit(ctx, path, bare, out, func(ctx context.Context, name string) (*domain.VersionSpec, error) {
		if wanted, ok := explicit[name]; ok {
			return &domain.VersionSpec{Op: domain.CompEqual, Version: wanted}, nil
		}
		latest, err := a.index.LatestVersion(ctx, name)
		if err != nil {
			return nil, err
		}
		return &domain.VersionSpec{Op: domain.CompEqual, Version: latest.String()}, nil
	})
}

// Unpin removes the version pin from each named requirement.
func (a *App) Unpin(ctx context.Context, path string, names []string, out io.Writer) error {
	return a.edit(ctx, path, names, out, func(context.Context, string) (*domain.VersionSpec, error) {
		return nil, nil
	})
}

// edit applies a spec change to the manifest in the closure that declares
// each named requirement, grouping rewrites per file.
func (a *App) edit(
	ctx context.Context,
	path string,
	names []string,
	out io.Writer,
	resolve func(ctx context.Context, name string) (*domain.VersionSpec, error),
) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	edits := make(map[*domain.Manifest][]manifest.Edit)
	for _, name := range names {
		owner := a.owner(loaded, name)
		if owner == nil {
			return zerr.With(domain.ErrRequirementNotFound, "name", name)
		}

		spec, err := resolve(ctx, domain.NormalizeName(name))
		if err != nil {
			return err
		}
		edits[owner] = append(edits[owner], manifest.Edit{Name: name, Spec: spec})

		req := owner.Requirement(domain.NormalizeName(name))
		updated := *req
		updated.Spec = spec
		fmt.Fprintln(out, updated.String())
	}

	for m, fileEdits := range edits {
		content, err := manifest.ApplyEdits(m, fileEdits)
		if err != nil {
			return err
		}
		if err := a.writer.WriteFile(m.Path.String(), content); err != nil {
			return err
		}
	}
	return nil
}

// owner returns the manifest in the closure declaring the named requirement.
func (a *App) owner(loaded *ports.LoadResult, name string) *domain.Manifest {
	normalized := domain.NormalizeName(name)
	for m := range loaded.Graph.Walk() {
		if m.Requirement(normalized) != nil {
			return m
		}
	}
	return nil
}

// Lock resolves the manifest closure into a lockfile and persists it.
// Unpinned requirements resolve to the latest version on the index;
// pinned ones lock at their pin.
func (a *App) Lock(ctx context.Context, path string, out io.Writer) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}
	if domain.HasErrors(loaded.Diagnostics) {
		a.renderer.Diagnostics(out, loaded.Diagnostics)
		return zerr.With(domain.ErrAuditFailed, "path", path)
	}

	closure := loaded.Graph.Closure()
	entries := make(map[string]domain.LockEntry, len(closure))
	for _, req := range closure {
		entry := domain.LockEntry{Name: req.Normalized()}
		if req.Spec != nil {
			entry.Requested = req.Spec.String()
		}

		if req.Pinned() {
			entry.Resolved = req.Spec.Version
		} else {
			latest, err := a.index.LatestVersion(ctx, req.Normalized())
			if err != nil {
				return zerr.Wrap(err, "failed to resolve requirement")
			}
			entry.Resolved = latest.String()
		}
		entries[entry.Name] = entry
	}

	lock := &domain.Lockfile{
		Version:     domain.LockfileVersion,
		Fingerprint: a.hasher.Fingerprint(closure),
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
	}
	if err := a.locks.Put(path, lock); err != nil {
		return err
	}

	fmt.Fprintf(out, "locked %d requirements\n", len(entries))
	return nil
}

// Verify compares the stored lockfile against the current manifest
// closure. Returns domain.ErrLockDrift when they disagree.
func (a *App) Verify(_ context.Context, path string, out io.Writer) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	lock, err := a.locks.Get(path)
	if err != nil {
		return err
	}

	closure := loaded.Graph.Closure()
	drifts := lock.Diff(closure, a.hasher.Fingerprint(closure))
	if len(drifts) == 0 {
		fmt.Fprintln(out, "lockfile up to date")
		return nil
	}

	for _, d := range drifts {
		if d.Name == "" {
			fmt.Fprintln(out, d.Reason)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", d.Name, d.Reason)
	}
	return zerr.With(domain.ErrLockDrift, "drifts", len(drifts))
}

// Sync cross-checks the CI pin file against the manifest closure.
func (a *App) Sync(_ context.Context, path, pinsPath string, out io.Writer) error {
	loaded, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	diags, err := a.pins.Check(pinsPath, loaded.Graph.Closure())
	if err != nil {
		return zerr.Wrap(err, "failed to check CI pins")
	}

	a.renderer.Diagnostics(out, diags)
	a.renderer.Summary(out, 1, diags)

	if domain.HasErrors(diags) {
		return zerr.With(domain.ErrAuditFailed, "path", pinsPath)
	}
	return nil
}

// Watch audits the manifests, then re-audits whenever one changes on
// disk, until ctx is cancelled.
func (a *App) Watch(ctx context.Context, paths []string, opts CheckOptions, out io.Writer) error {
	if err := a.checkAndReport(ctx, paths, opts, out); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer a.watcher.Close() //nolint:errcheck // Close on shutdown

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-a.watcher.Events():
			if !ok {
				return nil
			}
			a.logger.Info(fmt.Sprintf("%s changed", event.Path))
			if err := a.checkAndReport(ctx, paths, opts, out); err != nil {
				return err
			}
		}
	}
}

// checkAndReport runs Check but keeps the watch loop alive across audit
// failures; only unexpected errors propagate.
func (a *App) checkAndReport(ctx context.Context, paths []string, opts CheckOptions, out io.Writer) error {
	err := a.Check(ctx, paths, opts, out)
	if err == nil || errors.Is(err, domain.ErrAuditFailed) {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	// A rename-replace save can briefly leave the manifest missing;
	// the next event will pick the new file up.
	if errors.Is(err, domain.ErrManifestNotFound) {
		a.logger.Warn("manifest disappeared, waiting for the next change")
		return nil
	}
	return err
}
