package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/observ"
	"cminus/internal/project"
	"cminus/internal/sema"
	"cminus/internal/source"
	"cminus/internal/symbols"
	"cminus/internal/trace"
)

// Options configures CheckFiles.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds the number of files analysed at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Sort orders each file's diagnostics by position.
	Sort bool
	// Validate checks symbol table invariants after each pass.
	Validate bool
	// Cache, when set, short-circuits files whose tree and options were
	// already analysed without an internal fault.
	Cache *DiskCache
	Sink  ProgressSink
}

// FileResult is the outcome of one tree file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Tree and Sema are nil when the file failed to load or came from the cache.
	Tree   *ast.Tree
	Sema   *sema.Result
	Cached bool
	// Err is the internal fault of the pass, if any; it is also in Bag.
	Err    error
	Timing observ.Report
}

// Failed reports whether the file has errors of any kind.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// Stats summarises a CheckFiles run.
type Stats struct {
	Files     int
	Failed    int
	CacheHits int
}

type pending struct {
	tree  *ast.Tree
	key   project.Digest
	timer *observ.Timer
	err   error
}

// CheckFiles analyses every tree file in paths. Files are loaded and their
// sources registered in fileSet in order; the analyses then run concurrently,
// each on its own tree, table and bag. Results are in the order of paths.
//
// The returned error is only set when ctx is cancelled; per-file problems
// are reported in each FileResult.
func CheckFiles(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) ([]FileResult, Stats, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", strconv.Itoa(len(paths)))
	ctx = trace.WithSpan(ctx, span)

	results := make([]FileResult, len(paths))
	work := make([]pending, len(paths))
	settings := settingsDigest(opts)

	// FileSet is not safe for concurrent writes: register everything first.
	for i, path := range paths {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		timer := observ.NewTimer()
		idx := timer.Begin("load")
		tree, data, id, err := LoadTree(fileSet, path)
		timer.End(idx, "")
		results[i] = FileResult{Path: path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
		work[i] = pending{tree: tree, timer: timer, err: err}
		if err != nil {
			results[i].Bag.Add(loadDiagnostic(id, err))
			continue
		}
		work[i].key = project.Combine(project.HashBytes(data), settings)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, w := &results[i], &work[i]
			if w.err != nil {
				res.Timing = w.timer.Report()
				emit(opts.Sink, Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: w.err})
				return nil
			}
			if checkCached(gctx, res, w, opts) {
				hits.Add(1)
				return nil
			}
			checkOne(gctx, res, w, opts)
			return nil
		})
	}
	err := g.Wait()

	stats := Stats{Files: len(paths), CacheHits: int(hits.Load())}
	for i := range results {
		if results[i].Failed() {
			stats.Failed++
		}
	}
	span.WithExtra("failed", strconv.Itoa(stats.Failed)).
		WithExtra("cached", strconv.Itoa(stats.CacheHits))
	if err != nil {
		span.End(err.Error())
		return results, stats, err
	}
	span.End("")
	return results, stats, nil
}

func checkCached(ctx context.Context, res *FileResult, w *pending, opts Options) bool {
	if opts.Cache == nil {
		return false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(w.key, &payload)
	if err != nil || !ok {
		return false
	}
	payloadToBag(&payload, res.FileID, res.Bag)
	res.Cached = true
	res.Timing = w.timer.Report()
	trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_hit", res.Path, trace.CurrentSpan(ctx).SpanID)
	emit(opts.Sink, Event{File: res.Path, Stage: StageAnalyze, Status: StatusCached})
	return true
}

func checkOne(ctx context.Context, res *FileResult, w *pending, opts Options) {
	emit(opts.Sink, Event{File: res.Path, Stage: StageAnalyze, Status: StatusWorking})
	start := time.Now()

	idx := w.timer.Begin("analyze")
	result, err := sema.Analyze(ctx, w.tree, sema.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		Validate: opts.Validate,
	})
	w.timer.End(idx, "")
	res.Tree, res.Sema = w.tree, result

	if err != nil {
		res.Err = err
		code := diag.InternalFault
		if errors.Is(err, symbols.ErrEmptyTable) {
			code = diag.InternalEmptyTable
		}
		res.Bag.Add(diag.NewError(code, source.Pos{File: res.FileID}, err.Error()))
	}
	if opts.Sort {
		idx = w.timer.Begin("sort")
		res.Bag.Sort()
		w.timer.End(idx, "")
	}
	res.Timing = w.timer.Report()

	if err == nil && opts.Cache != nil {
		// a failed write only costs the next run a re-analysis
		_ = opts.Cache.Put(w.key, bagToPayload(res.Bag, res.Path))
	}

	status := StatusDone
	if res.Failed() {
		status = StatusError
	}
	emit(opts.Sink, Event{File: res.Path, Stage: StageAnalyze, Status: status, Err: err, Elapsed: time.Since(start)})
}

// settingsDigest covers every option that changes a file's diagnostics.
func settingsDigest(opts Options) project.Digest {
	return project.HashBytes(fmt.Appendf(nil, "cache=%d max=%d sort=%t validate=%t",
		diskCacheSchemaVersion, opts.MaxDiagnostics, opts.Sort, opts.Validate))
}
