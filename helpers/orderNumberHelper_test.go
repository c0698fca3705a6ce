package helpers

import (
	"context"
	"testing"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		year int
		seq  int
		want string
	}{
		{2024, 1, "A-2024-0001"},
		{2024, 42, "A-2024-0042"},
		{2025, 999, "A-2025-0999"},
		{2025, 1234, "A-2025-1234"},
		{2026, 10000, "A-2026-10000"},
	}
	for _, tt := range tests {
		if got := FormatOrderNumber(tt.year, tt.seq); got != tt.want {
			t.Errorf("FormatOrderNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		number string
		want   int
	}{
		{"A-2024-0001", 1},
		{"A-2024-0420", 420},
		{"A-2025-9999", 9999},
		{"A-2024", 0},
		{"garbage", 0},
		{"A-2024-xyz", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseSequence(tt.number); got != tt.want {
			t.Errorf("ParseSequence(%q) = %d, want %d", tt.number, got, tt.want)
		}
	}
}

func TestProposeSequences(t *testing.T) {
	got := ProposeSequences(7, 3)
	want := []int{8, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ProposeSequences(7, 3)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestProposeSequencesDistinct(t *testing.T) {
	seqs := ProposeSequences(0, 50)
	seen := map[int]bool{}
	for _, s := range seqs {
		if seen[s] {
			t.Fatalf("duplicate sequence %d in proposal", s)
		}
		seen[s] = true
	}
	if len(seqs) != 50 {
		t.Fatalf("got %d sequences, want 50", len(seqs))
	}
}

// fakeNumberStore backs the allocator with an in-memory taken set.
type fakeNumberStore struct {
	max   int
	taken map[string]bool
	scans int
}

func (f *fakeNumberStore) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	return f.max, nil
}

func (f *fakeNumberStore) ExistingOrderNumbers(ctx context.Context, numbers []string) ([]string, error) {
	f.scans++
	var colliding []string
	for _, n := range numbers {
		if f.taken[n] {
			colliding = append(colliding, n)
		}
	}
	return colliding, nil
}

// collideFirstStore reports the first proposed number as taken no matter how
// far the scan start advances, so every attempt collides.
type collideFirstStore struct {
	scans int
}

func (s *collideFirstStore) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	return 0, nil
}

func (s *collideFirstStore) ExistingOrderNumbers(ctx context.Context, numbers []string) ([]string, error) {
	s.scans++
	return numbers[:1], nil
}

func TestAllocateOrderNumbersRetriesPastCollisions(t *testing.T) {
	store := &fakeNumberStore{max: 2, taken: map[string]bool{"A-2024-0003": true}}

	got, err := allocateOrderNumbers(context.Background(), store, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A-2024-0004", "A-2024-0005"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if store.scans != 2 {
		t.Errorf("existence scans = %d, want 2 (one collision, one clean retry)", store.scans)
	}
}

func TestAllocateOrderNumbersFailsClosedOnExhaustion(t *testing.T) {
	store := &collideFirstStore{}

	got, err := allocateOrderNumbers(context.Background(), store, 2024, 3)
	if err == nil {
		t.Fatal("expected an error once every retry collides")
	}
	if got != nil {
		t.Fatalf("exhaustion must not return a partial batch, got %v", got)
	}
	if store.scans != 5 {
		t.Errorf("existence scans = %d, want 5 bounded retries", store.scans)
	}
}

func TestAllocateOrderNumbersRejectsNonPositiveCount(t *testing.T) {
	store := &fakeNumberStore{}
	if _, err := allocateOrderNumbers(context.Background(), store, 2024, 0); err == nil {
		t.Fatal("expected an error for a non-positive count")
	}
	if store.scans != 0 {
		t.Errorf("no storage scan expected for a rejected count, got %d", store.scans)
	}
}

func TestNextStartAfterCollisions(t *testing.T) {
	tests := []struct {
		name      string
		last      int
		colliding []string
		want      int
	}{
		{"advancesPastHighestCollision", 5, []string{"A-2024-0007", "A-2024-0009"}, 9},
		{"ignoresLowerSequences", 12, []string{"A-2024-0003"}, 12},
		{"noCollisions", 4, nil, 4},
		{"malformedNumbersIgnored", 4, []string{"bogus"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStartAfterCollisions(tt.last, tt.colliding); got != tt.want {
				t.Errorf("NextStartAfterCollisions(%d, %v) = %d, want %d", tt.last, tt.colliding, got, tt.want)
			}
		})
	}
}
