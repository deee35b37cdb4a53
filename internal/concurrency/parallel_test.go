package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.MaxWorkers != 10 {
		t.Errorf("Expected MaxWorkers to be 10, got %d", opts.MaxWorkers)
	}
}

func letter(ctx context.Context, index int, item int) (string, error) {
	return string(rune('a' + item - 1)), nil
}

func TestProcessParallelEmpty(t *testing.T) {
	results, errs := ProcessParallel(context.Background(), []int{}, DefaultOptions(), letter)
	if len(results) != 0 {
		t.Errorf("Expected empty results for empty input, got %d items", len(results))
	}
	if errs != nil {
		t.Errorf("Expected nil errors for empty input, got %v", errs)
	}
}

func TestProcessParallel(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	expected := []string{"a", "b", "c", "d", "e"}

	for _, opts := range []ParallelOptions{DefaultOptions(), {MaxWorkers: 2}, {MaxWorkers: -1}, {MaxWorkers: 100}} {
		results, errs := ProcessParallel(context.Background(), input, opts, letter)
		if len(errs) != 0 {
			t.Errorf("workers=%d: expected no errors, got %v", opts.MaxWorkers, errs)
		}
		for i, res := range results {
			if res != expected[i] {
				t.Errorf("workers=%d: index %d: expected %s, got %s", opts.MaxWorkers, i, expected[i], res)
			}
		}
	}
}

func TestProcessParallelErrors(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	results, errs := ProcessParallel(context.Background(), input, DefaultOptions(), func(ctx context.Context, index int, item int) (string, error) {
		if item%2 == 0 {
			return "", errors.New("even number error")
		}
		return letter(ctx, index, item)
	})
	if len(results) != len(input) {
		t.Errorf("Expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errs))
	}
	if results[0] != "a" || results[1] != "" || results[4] != "e" {
		t.Errorf("unexpected results %v", results)
	}
}

func TestProcessParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	input := []int{1, 2, 3}
	results, errs := ProcessParallel(ctx, input, DefaultOptions(), func(ctx context.Context, index int, item int) (string, error) {
		calls.Add(1)
		return letter(ctx, index, item)
	})

	if calls.Load() != 0 {
		t.Errorf("Expected no work after cancellation, got %d calls", calls.Load())
	}
	if len(results) != len(input) {
		t.Errorf("Expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != len(input) {
		t.Fatalf("Expected %d errors, got %d", len(input), len(errs))
	}
	for _, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	}
}

func TestProcessParallelBoundsWorkers(t *testing.T) {
	var running, peak atomic.Int32
	input := make([]int, 20)

	_, _ = ProcessParallel(context.Background(), input, ParallelOptions{MaxWorkers: 3}, func(ctx context.Context, index int, item int) (int, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return index, nil
	})

	if peak.Load() > 3 {
		t.Errorf("Expected at most 3 concurrent workers, saw %d", peak.Load())
	}
}

func TestProcessParallelOrder(t *testing.T) {
	input := []int{5, 1, 4, 2, 3}
	results, _ := ProcessParallel(context.Background(), input, ParallelOptions{MaxWorkers: 5}, func(ctx context.Context, index int, item int) (int, error) {
		time.Sleep(time.Duration(item) * time.Millisecond)
		return index, nil
	})
	for i, r := range results {
		if r != i {
			t.Errorf("Expected result %d at index %d, got %d", i, i, r)
		}
	}
}
