package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/harrison/caserun/internal/models"
)

func casesOf(ids ...string) []models.Case {
	cases := make([]models.Case, len(ids))
	for i, id := range ids {
		cases[i] = models.Case{ID: id}
	}
	return cases
}

func TestSequentialAllPass(t *testing.T) {
	inv := newFakeInvoker(0)

	err := RunSequential(context.Background(), inv, casesOf("a", "b", "c"), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.started) != 3 {
		t.Errorf("started %d cases, want 3", len(inv.started))
	}
}

func TestSequentialHaltsOnFirstFailure(t *testing.T) {
	inv := newFakeInvoker(0)
	inv.pass("a")
	inv.fail("b", 5)
	inv.pass("c")

	err := RunSequential(context.Background(), inv, casesOf("a", "b", "c"), testLogger())

	var failed *CaseFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected CaseFailedError, got %v", err)
	}
	if failed.CaseID != "b" {
		t.Errorf("failing case = %s, want b", failed.CaseID)
	}
	if failed.ExitCode != 5 {
		t.Errorf("preserved exit code = %d, want 5", failed.ExitCode)
	}

	// c must never have started
	for _, id := range inv.started {
		if id == "c" {
			t.Error("case c was started after the failing case")
		}
	}
	if len(inv.started) != 2 {
		t.Errorf("started %d cases, want 2 (a then b)", len(inv.started))
	}
}

func TestSequentialRunsInDiscoveryOrder(t *testing.T) {
	inv := newFakeInvoker(0)

	err := RunSequential(context.Background(), inv, casesOf("z", "a", "m"), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"z", "a", "m"}
	for i, id := range want {
		if inv.started[i] != id {
			t.Fatalf("execution order %v, want %v", inv.started, want)
		}
	}
}

func TestSequentialOrchestrationError(t *testing.T) {
	inv := newFakeInvoker(0)
	inv.explode("a")

	err := RunSequential(context.Background(), inv, casesOf("a", "b"), testLogger())
	if err == nil {
		t.Fatal("expected error")
	}
	var failed *CaseFailedError
	if errors.As(err, &failed) {
		t.Errorf("orchestration error must not be reported as a case failure: %v", err)
	}
	if len(inv.started) != 1 {
		t.Errorf("started %d cases, want 1", len(inv.started))
	}
}

func TestSequentialCancelledBetweenCases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv := newFakeInvoker(0)
	err := RunSequential(ctx, inv, casesOf("a", "b"), testLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(inv.started) != 0 {
		t.Errorf("cases started after cancellation: %v", inv.started)
	}
}
