package fuzztests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/sema"
	"cminus/internal/testkit"
)

// analyzeTimeout bounds one analysis; a longer run points at a cycle the
// validator let through.
const analyzeTimeout = 5 * time.Second

func FuzzDecodeAnalyze(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		tree, _, err := ast.Decode(bytes.NewReader(input), 0)
		if err != nil {
			return
		}

		done := make(chan struct{})
		var (
			res    *sema.Result
			runErr error
		)
		go func() {
			defer close(done)
			res, runErr = sema.Analyze(context.Background(), tree, sema.Options{
				Reporter: diag.BagReporter{Bag: diag.NewBag(128)},
				Validate: true,
			})
		}()
		select {
		case <-done:
		case <-time.After(analyzeTimeout):
			t.Fatalf("analysis did not finish within %s", analyzeTimeout)
		}

		if runErr != nil {
			// a validated tree may still lack a usable root
			if res == nil {
				return
			}
			t.Fatalf("internal fault on a validated tree: %v", runErr)
		}
		if err := testkit.CheckBindings(tree, res.Table); err != nil {
			t.Fatalf("bindings: %v", err)
		}
	})
}

func TestSeedsAnalyseCleanly(t *testing.T) {
	for i, build := range seedTrees() {
		b := ast.NewBuilder(nil, 0)
		build(b)
		var buf bytes.Buffer
		if err := ast.Encode(&buf, b.Tree, "seed.cm"); err != nil {
			t.Fatalf("seed %d: encode: %v", i, err)
		}
		tree, src, err := ast.Decode(&buf, 0)
		if err != nil {
			t.Fatalf("seed %d: decode: %v", i, err)
		}
		if src != "seed.cm" {
			t.Fatalf("seed %d: source %q", i, src)
		}
		res, err := sema.Analyze(context.Background(), tree, sema.Options{Validate: true})
		if err != nil {
			t.Fatalf("seed %d: analyze: %v", i, err)
		}
		if err := testkit.CheckBindings(tree, res.Table); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
}
