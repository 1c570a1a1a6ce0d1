package adaptive

import (
	"context"
	"errors"
	"testing"
)

// TestRunBatchMatchesSequential verifies that parallel runs give the same
// results as one-by-one filtering.
func TestRunBatchMatchesSequential(t *testing.T) {
	const jobs = 6

	cfg := DefaultConfig(NLMS)
	cfg.Order = 16
	cfg.StepSize = 0.05
	cfg.Seed = 3

	batch := make([]Job, jobs)
	for i := range jobs {
		m := mixture(2000 + 100*i)
		batch[i] = Job{Name: string(rune('a' + i)), D: m.Noisy, X: m.Reference, Clean: m.Clean}
	}

	results, err := RunBatch(context.Background(), cfg, batch, 3)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if len(results) != jobs {
		t.Fatalf("got %d results, want %d", len(results), jobs)
	}

	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i, job := range batch {
		if results[i].Err != nil {
			t.Fatalf("job %s failed: %v", job.Name, results[i].Err)
		}
		if results[i].Name != job.Name {
			t.Errorf("result %d name = %q, want %q", i, results[i].Name, job.Name)
		}

		want, err := f.Filter(job.D, job.X, job.Clean)
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}

		got := results[i].Result
		if len(got.Error) != len(want.Error) {
			t.Fatalf("job %s length mismatch: batch=%d, direct=%d", job.Name, len(got.Error), len(want.Error))
		}
		for n := range want.Error {
			if got.Error[n] != want.Error[n] {
				t.Errorf("job %s sample %d mismatch: batch=%v, direct=%v", job.Name, n, got.Error[n], want.Error[n])
				break // Don't flood with errors
			}
		}
	}
}

// TestRunBatchIsolatesFailures verifies a bad job does not stop the others.
func TestRunBatchIsolatesFailures(t *testing.T) {
	m := mixture(1000)
	batch := []Job{
		{Name: "good", D: m.Noisy, X: m.Reference, Clean: m.Clean},
		{Name: "empty", D: nil, X: m.Reference},
		{Name: "also good", D: m.Noisy, X: m.Reference},
	}

	results, err := RunBatch(context.Background(), DefaultConfig(LMS), batch, 2)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if results[0].Err != nil || results[0].Result == nil {
		t.Errorf("first job should succeed, got err=%v", results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrValidation) {
		t.Errorf("empty job err = %v, want ErrValidation", results[1].Err)
	}
	if results[2].Err != nil || results[2].Result == nil {
		t.Errorf("third job should succeed, got err=%v", results[2].Err)
	}
	if results[2].Result != nil && results[2].Result.Metrics != nil {
		t.Error("job without clean signal should have no metrics")
	}
}

// TestRunBatchInvalidConfig verifies configuration errors fail the whole batch.
func TestRunBatchInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(RLS)
	cfg.ForgettingFactor = 2

	_, err := RunBatch(context.Background(), cfg, []Job{{Name: "x"}}, 1)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

// TestRunBatchCancelled verifies that a cancelled context skips pending jobs.
func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := mixture(500)
	results, err := RunBatch(ctx, DefaultConfig(NLMS), []Job{{Name: "a", D: m.Noisy, X: m.Reference}}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("job err = %v, want context.Canceled", results[0].Err)
	}
}
