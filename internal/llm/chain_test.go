package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClient struct {
	name   string
	answer string
	err    error
	delay  time.Duration
	calls  int
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Complete(ctx context.Context, _ Request) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestChainComplete(t *testing.T) {
	req := Request{System: "system", User: "user"}

	t.Run("first_success_short_circuits", func(t *testing.T) {
		first := &fakeClient{name: "first", answer: "alpha"}
		second := &fakeClient{name: "second", answer: "beta"}
		chain := NewChain(time.Second, first, second)

		got, err := chain.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "alpha" {
			t.Errorf("answer = %q, want alpha", got)
		}
		if second.calls != 0 {
			t.Error("second back-end should not have been called")
		}
	})

	t.Run("falls_through_on_error", func(t *testing.T) {
		first := &fakeClient{name: "first", err: errors.New("rate limited")}
		second := &fakeClient{name: "second", answer: "beta"}
		chain := NewChain(time.Second, first, second)

		got, err := chain.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "beta" {
			t.Errorf("answer = %q, want beta", got)
		}
	})

	t.Run("empty_answer_counts_as_failure", func(t *testing.T) {
		first := &fakeClient{name: "first", answer: ""}
		second := &fakeClient{name: "second", answer: "beta"}
		chain := NewChain(time.Second, first, second)

		got, err := chain.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "beta" {
			t.Errorf("answer = %q, want beta", got)
		}
	})

	t.Run("slow_back_end_times_out", func(t *testing.T) {
		slow := &fakeClient{name: "slow", answer: "never", delay: 500 * time.Millisecond}
		fast := &fakeClient{name: "fast", answer: "beta"}
		chain := NewChain(20*time.Millisecond, slow, fast)

		got, err := chain.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "beta" {
			t.Errorf("answer = %q, want beta", got)
		}
	})

	t.Run("all_fail_joins_errors", func(t *testing.T) {
		first := &fakeClient{name: "first", err: errors.New("down")}
		second := &fakeClient{name: "second", err: errors.New("also down")}
		chain := NewChain(time.Second, first, second)

		_, err := chain.Complete(context.Background(), req)
		if err == nil {
			t.Fatal("expected error when all back-ends fail")
		}
	})

	t.Run("empty_chain_errors", func(t *testing.T) {
		chain := NewChain(time.Second)
		if !chain.Empty() {
			t.Error("expected chain to report empty")
		}
		if _, err := chain.Complete(context.Background(), req); err == nil {
			t.Fatal("expected error for empty chain")
		}
	})

	t.Run("nil_chain_is_empty", func(t *testing.T) {
		var chain *Chain
		if !chain.Empty() {
			t.Error("expected nil chain to report empty")
		}
	})
}
