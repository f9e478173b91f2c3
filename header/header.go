// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header adds a license header to source files in a directory tree.
//
// A file receives the header when its name ends with one of the configured
// extensions and its content does not already contain the license text.
// The check is a plain substring match, so a file that mentions the license
// text anywhere is treated as licensed.
package header

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"go.astrophena.name/addlicense/logger"
	"go.astrophena.name/addlicense/syncx"
)

// Separator is placed between the license text and the original content.
const Separator = "\n\n"

var (
	// ErrNotText is returned for matched files that are not valid UTF-8.
	ErrNotText = errors.New("not valid UTF-8 text")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	errNotDir = errors.New("not a directory")
)

// Config configures a single run of [Apply].
type Config struct {
	// Root is the directory to walk.
	Root string
	// License is the text to insert at the top of matched files.
	License string
	// Extensions are file name suffixes, like ".kt", selecting files to process.
	Extensions []string
	// Exclusions are slash-separated path suffixes of files that are never
	// processed, even when they match an extension.
	Exclusions []string

	// DryRun reports what would change without writing any file.
	DryRun bool
	// Jobs is the number of files processed concurrently.
	Jobs int
	// KeepGoing logs failing files and continues the walk instead of
	// aborting on the first error.
	KeepGoing bool
}

// Default returns the compiled-in configuration for root.
func Default(root string) *Config {
	return &Config{
		Root:       root,
		License:    DefaultLicense,
		Extensions: slices.Clone(DefaultExtensions),
		Jobs:       1,
	}
}

// Validate reports whether c can be used for a run.
func (c *Config) Validate() error {
	switch {
	case c.Root == "":
		return fmt.Errorf("%w: root directory is empty", ErrInvalidConfig)
	case c.License == "":
		return fmt.Errorf("%w: license text is empty", ErrInvalidConfig)
	case len(c.Extensions) == 0:
		return fmt.Errorf("%w: no extensions", ErrInvalidConfig)
	case slices.Contains(c.Extensions, ""):
		return fmt.Errorf("%w: empty extension", ErrInvalidConfig)
	case c.Jobs < 1:
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidConfig, c.Jobs)
	}
	return nil
}

// Matches reports whether the file name of path ends with one of the
// configured extensions.
func (c *Config) Matches(path string) bool {
	name := filepath.Base(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (c *Config) isExcluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, ex := range c.Exclusions {
		if strings.HasSuffix(path, ex) {
			return true
		}
	}
	return false
}

// Insert returns content with license prepended, followed by [Separator].
// If content already contains license, it is returned unchanged and the
// second result is false.
func Insert(content, license string) (string, bool) {
	if strings.Contains(content, license) {
		return content, false
	}
	return license + Separator + content, true
}

// Outcome is the result of processing one file.
type Outcome int

const (
	// Added means the license was inserted, or would be in a dry run.
	Added Outcome = iota + 1
	// Present means the file already contained the license.
	Present
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Present:
		return "present"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result describes a processed file.
type Result struct {
	Path    string
	Outcome Outcome
}

// FileError records a failure to process a single file.
type FileError struct {
	Op   string // "walk", "read", "decode" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Apply walks cfg.Root and adds cfg.License to every matched file that does
// not contain it yet. Symbolic links are not followed.
//
// report, if not nil, is called once for each processed file. Calls are
// never concurrent, even when cfg.Jobs is greater than one.
//
// Unless cfg.KeepGoing is set, Apply stops at the first failing file and
// returns its error; files rewritten before that stay rewritten. With
// cfg.KeepGoing, failures are logged and returned joined after the walk.
// The returned [Summary] covers the files processed successfully in both
// cases.
func Apply(ctx context.Context, cfg *Config, report func(Result)) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	a := &applier{
		cfg:    cfg,
		report: report,
		sum:    new(Summary),
	}
	lwg := syncx.NewLimitedWaitGroup(cfg.Jobs)

	walkErr := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		if err != nil {
			ferr := &FileError{Op: "walk", Path: path, Err: err}
			// The root itself must be readable.
			if d == nil || path == cfg.Root || !cfg.KeepGoing {
				return ferr
			}
			a.fail(ctx, ferr)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == cfg.Root && !d.IsDir() {
			return &FileError{Op: "walk", Path: path, Err: errNotDir}
		}
		if !d.Type().IsRegular() || !cfg.Matches(path) {
			return nil
		}
		if cfg.isExcluded(path) {
			logger.Debug(ctx, "skipping excluded file", slog.String("path", path))
			return nil
		}

		if cfg.Jobs == 1 {
			return a.run(ctx, path)
		}
		lwg.Go(func() {
			if err := a.run(ctx, path); err != nil {
				cancel(err)
			}
		})
		return nil
	})
	lwg.Wait()

	if walkErr == nil {
		// A concurrent worker may have failed after the walk finished.
		walkErr = context.Cause(ctx)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sum, errors.Join(append([]error{walkErr}, a.errs...)...)
}

type applier struct {
	cfg    *Config
	report func(Result)
	sum    *Summary

	mu   sync.Mutex // guards report calls and errs
	errs []error
}

// run processes path and applies the error policy. A non-nil error aborts
// the walk.
func (a *applier) run(ctx context.Context, path string) error {
	rec, claimed := a.sum.claim(path)
	if !claimed {
		return nil
	}

	outcome, err := a.process(path)
	if err != nil {
		if a.cfg.KeepGoing {
			a.fail(ctx, err)
			return nil
		}
		return err
	}
	rec.outcome = outcome

	logger.Debug(ctx, "processed file", slog.String("path", path), slog.String("outcome", outcome.String()))

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.report != nil {
		a.report(Result{Path: path, Outcome: outcome})
	}
	return nil
}

func (a *applier) fail(ctx context.Context, err error) {
	var ferr *FileError
	if errors.As(err, &ferr) {
		logger.Warn(ctx, "cannot process file", slog.String("op", ferr.Op), slog.String("path", ferr.Path), logger.Err(ferr.Err))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errs = append(a.errs, err)
}

func (a *applier) process(path string) (Outcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, &FileError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(content) {
		return 0, &FileError{Op: "decode", Path: path, Err: ErrNotText}
	}

	updated, ok := Insert(string(content), a.cfg.License)
	if !ok {
		return Present, nil
	}
	if a.cfg.DryRun {
		return Added, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return 0, &FileError{Op: "write", Path: path, Err: err}
	}
	return Added, nil
}
