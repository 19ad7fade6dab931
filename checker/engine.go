// Package checker drives the conformance run: it collects source files,
// parses and evaluates them in parallel, and aggregates findings into a
// deterministic result.
package checker

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/sync/semaphore"

	"github.com/conformd/cxxlint/config"
	"github.com/conformd/cxxlint/frontend"
	"github.com/conformd/cxxlint/model"
	"github.com/conformd/cxxlint/rules"
)

// UnitError records a source unit that could not be fully evaluated. It
// never aborts the run; the reporter annotates the unit as skipped or
// partial.
type UnitError struct {
	Path    string `json:"path"`
	Reason  string `json:"reason"`
	Partial bool   `json:"partial"` // findings exist but may be incomplete
}

// Result is the aggregated outcome of one run
type Result struct {
	Findings []model.Finding `json:"findings"`
	Units    int             `json:"units"`
	Skipped  []UnitError     `json:"skipped,omitempty"`
}

// ExitCode is the CI contract: nonzero iff any finding is an error
func (r *Result) ExitCode() int {
	for i := range r.Findings {
		if r.Findings[i].Severity == model.SeverityError {
			return 1
		}
	}
	return 0
}

// Runner evaluates source units against the configured rule set
type Runner struct {
	cfg       *config.Config
	log       hclog.Logger
	fs        afs.Service
	inspector *frontend.Inspector
	settings  rules.Settings
	opts      rules.Options
	jobs      int
}

// New validates the configuration against the rule registry and builds a
// runner. A malformed rule configuration fails here, before any unit runs.
func New(cfg *config.Config, log hclog.Logger) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	settings, err := rules.NewSettings(cfg)
	if err != nil {
		return nil, NewConfigError(err)
	}
	jobs := cfg.Checker.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Runner{
		cfg:       cfg,
		log:       log,
		fs:        afs.New(),
		inspector: frontend.NewInspector(),
		settings:  settings,
		opts:      rules.NewOptions(cfg),
		jobs:      jobs,
	}, nil
}

// Run checks the given paths (files or directory roots). Units evaluate in
// parallel; each worker fills its own result slot and the slots merge at the
// join point. Per-unit failures are recorded, never fatal; cancellation
// stops scheduling at unit boundaries and discards unfinished units.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	files, skipped := r.collect(ctx, paths)
	r.log.Debug("collected source units", "count", len(files), "skipped", len(skipped))

	perUnit := make([][]model.Finding, len(files))
	unitErrs := make([]*UnitError, len(files))

	sem := semaphore.NewWeighted(int64(r.jobs))
	var wg sync.WaitGroup

	for i, file := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			defer sem.Release(1)
			unit, err := r.inspector.InspectFile(ctx, path)
			if ctx.Err() != nil {
				// cancelled mid-unit: discard, do not report
				return
			}
			if err != nil {
				r.log.Warn("skipping unit", "path", path, "error", err)
				unitErrs[idx] = &UnitError{Path: path, Reason: err.Error()}
				return
			}
			findings := rules.Evaluate(unit, r.settings, r.opts)
			if ctx.Err() != nil {
				return
			}
			if unit.Partial {
				unitErrs[idx] = &UnitError{Path: path, Reason: "parse errors, findings may be incomplete", Partial: true}
			}
			perUnit[idx] = findings
		}(i, file)
	}
	wg.Wait()

	result := &Result{Units: len(files), Skipped: skipped}
	for _, ue := range unitErrs {
		if ue != nil {
			result.Skipped = append(result.Skipped, *ue)
		}
	}
	result.Findings = aggregate(perUnit)
	sort.Slice(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].Path < result.Skipped[j].Path
	})
	return result, nil
}

// aggregate merges per-unit findings, deduplicates identical
// (rule, location) pairs and orders the set deterministically.
func aggregate(perUnit [][]model.Finding) []model.Finding {
	seen := map[uint64]bool{}
	var all []model.Finding
	for _, findings := range perUnit {
		for i := range findings {
			key := findings[i].Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, findings[i])
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Less(&all[j]) })
	return all
}

// collect expands the given paths into the list of source files to check.
// Unreadable paths become skip records rather than run failures.
func (r *Runner) collect(ctx context.Context, paths []string) ([]string, []UnitError) {
	var files []string
	var skipped []UnitError
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			object, objErr := r.fs.Object(ctx, path)
			if objErr != nil {
				skipped = append(skipped, UnitError{Path: path, Reason: NewIOError("read", path, err).Error()})
				continue
			}
			if !object.IsDir() {
				files = append(files, path)
				continue
			}
			files = append(files, r.walkDir(ctx, path, &skipped)...)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		files = append(files, r.walkDir(ctx, path, &skipped)...)
	}
	sort.Strings(files)
	return files, skipped
}

func (r *Runner) walkDir(ctx context.Context, root string, skipped *[]UnitError) []string {
	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return false, nil
			}
			return true, nil
		}
		if !r.matchExtension(info.Name()) || r.excluded(parent, info.Name()) {
			return true, nil
		}
		files = append(files, url.Join(baseURL, parent, info.Name()))
		return true, nil
	}
	if err := r.fs.Walk(ctx, root, visitor); err != nil {
		*skipped = append(*skipped, UnitError{Path: root, Reason: NewIOError("read", root, err).Error()})
	}
	return files
}

func (r *Runner) matchExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range r.cfg.Checker.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// excluded matches the configured exclude patterns against the relative
// path and the base name, the way directory-scoped lint excludes usually do.
func (r *Runner) excluded(parent, name string) bool {
	if len(r.cfg.Checker.Exclude) == 0 {
		return false
	}
	rel := filepath.ToSlash(filepath.Join(parent, name))
	for _, pattern := range r.cfg.Checker.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if strings.Contains(rel, strings.Trim(pattern, "/")) && strings.Contains(pattern, "/") {
			return true
		}
	}
	return false
}
