package tei

import (
	"fmt"
	"testing"
)

func TestHistorySeed(t *testing.T) {
	h := NewHistory("start")
	if h.Len() != 1 || h.Current() != "start" {
		t.Fatalf("seeded log wrong: len=%d current=%q", h.Len(), h.Current())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("fresh log must not allow undo/redo")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	const n = 5
	h := NewHistory("s1")
	for i := 2; i <= n; i++ {
		h.Record(fmt.Sprintf("s%d", i))
	}
	// Walk down to s1.
	for i := n - 1; i >= 1; i-- {
		got, ok := h.Undo()
		if !ok {
			t.Fatalf("undo to s%d failed", i)
		}
		if want := fmt.Sprintf("s%d", i); got != want {
			t.Fatalf("undo: got %q want %q", got, want)
		}
	}
	// And back up to sn.
	for i := 2; i <= n; i++ {
		got, ok := h.Redo()
		if !ok {
			t.Fatalf("redo to s%d failed", i)
		}
		if want := fmt.Sprintf("s%d", i); got != want {
			t.Fatalf("redo: got %q want %q", got, want)
		}
	}
	if h.Current() != fmt.Sprintf("s%d", n) {
		t.Fatalf("round trip did not return to the last snapshot")
	}
}

func TestHistoryBranchDiscard(t *testing.T) {
	h := NewHistory("a")
	h.Record("b")
	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	h.Record("c")
	if h.Len() != 2 {
		t.Fatalf("expected [a c], got %d snapshots", h.Len())
	}
	if h.Current() != "c" {
		t.Fatalf("cursor should sit at c, got %q", h.Current())
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("b must be unreachable after the new edit")
	}
	if got, _ := h.Undo(); got != "a" {
		t.Fatalf("undo after branch discard: got %q want a", got)
	}
}

func TestHistoryBoundaryNoOps(t *testing.T) {
	h := NewHistory("a")
	h.Record("b")
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo at the upper boundary must be a no-op")
	}
	if h.Current() != "b" {
		t.Fatalf("state changed by boundary redo")
	}
	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Fatalf("undo at the lower boundary must be a no-op")
	}
	if h.Current() != "a" {
		t.Fatalf("state changed by boundary undo")
	}
}

func TestHistoryRecordsIdenticalSnapshots(t *testing.T) {
	h := NewHistory("same")
	h.Record("same")
	h.Record("same")
	if h.Len() != 3 {
		t.Fatalf("identical snapshots must still be recorded, len=%d", h.Len())
	}
	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo over identical snapshots failed")
	}
}
