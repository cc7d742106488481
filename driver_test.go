package memscrub_test

import (
	"errors"
	"testing"

	. "github.com/shaia/memscrub"
	"github.com/shaia/memscrub/internal/fixture"
)

type countingPolicy struct {
	chunk uint64
	calls int
	limit int
}

func (p *countingPolicy) NextChunk() uint64 {
	if p.calls >= p.limit {
		return 0
	}
	p.calls++
	return p.chunk
}

func TestAutoScrubDriverRunsUntilPolicyStops(t *testing.T) {
	geom := fixture.NewNullGeometry(16, 2)
	base := Address(0x1000)
	region := ScrubRegion{Start: base, End: base + 8*16 - 1}
	s, err := New(geom, []ScrubRegion{region})
	if err != nil {
		t.Fatal(err)
	}
	driver := NewAutoScrubDriver(s)
	policy := &countingPolicy{chunk: 16, limit: 8}
	if err := driver.Run(policy); err != nil {
		t.Fatal(err)
	}
	if policy.calls != 8 {
		t.Fatalf("policy.calls = %d, want 8", policy.calls)
	}
	if len(geom.Touches) != 8 {
		t.Fatalf("len(Touches) = %d, want 8", len(geom.Touches))
	}
}

func TestAutoScrubDriverStopsOnZero(t *testing.T) {
	geom := fixture.NewNullGeometry(16, 2)
	base := Address(0x1000)
	region := ScrubRegion{Start: base, End: base + 16 - 1}
	s, err := New(geom, []ScrubRegion{region})
	if err != nil {
		t.Fatal(err)
	}
	driver := NewAutoScrubDriver(s)
	policy := &countingPolicy{chunk: 16, limit: 0}
	if err := driver.Run(policy); err != nil {
		t.Fatal(err)
	}
	if policy.calls != 0 {
		t.Fatalf("policy.calls = %d, want 0", policy.calls)
	}
}

func TestRunAutoScrubPropagatesConstructionError(t *testing.T) {
	geom := fixture.NewNullGeometry(16, 2)
	policy := &countingPolicy{chunk: 16, limit: 1}
	if err := RunAutoScrub(geom, nil, policy); !errors.Is(err, ErrNoScrubAreas) {
		t.Fatalf("RunAutoScrub(nil regions) = %v, want ErrNoScrubAreas", err)
	}
}

func TestRunAutoScrubPropagatesScrubError(t *testing.T) {
	geom := fixture.NewNullGeometry(16, 2)
	base := Address(0x1000)
	region := ScrubRegion{Start: base, End: base + 16 - 1}
	policy := &countingPolicy{chunk: 15, limit: 1} // not a multiple of the cache line size
	if err := RunAutoScrub(geom, []ScrubRegion{region}, policy); !errors.Is(err, ErrUnalignedSize) {
		t.Fatalf("RunAutoScrub() = %v, want ErrUnalignedSize", err)
	}
}
