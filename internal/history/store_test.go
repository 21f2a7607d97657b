package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcrsim/core/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := Run{
			ID:         "run-" + string(rune('a'+i)),
			CreatedAt:  time.Date(2026, 1, 1, 12, i, 0, 0, time.UTC),
			Forward:    "ACGTACGTAC",
			Reverse:    "GTACGTACGT",
			TemplateID: "plasmid-1",
			Circular:   true,
			Amplicons:  1,
			Specific:   true,
		}
		require.NoError(t, s.Record(ctx, r))
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID, "newest first")
	assert.Equal(t, "run-b", runs[1].ID)
	assert.True(t, runs[0].Circular)
	assert.True(t, runs[0].Specific)
	assert.Equal(t, "plasmid-1", runs[0].TemplateID)
}

func TestRecentSubSecondOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Same second: one run mid-second, one exactly on the boundary. Text
	// timestamps would sort these lexicographically ("...05Z" after
	// "...05.5Z"); the store must order by actual time.
	early := Run{ID: "on-boundary", CreatedAt: time.Date(2026, 1, 1, 12, 0, 5, 0, time.UTC)}
	late := Run{ID: "mid-second", CreatedAt: time.Date(2026, 1, 1, 12, 0, 5, 500_000_000, time.UTC)}
	require.NoError(t, s.Record(ctx, late))
	require.NoError(t, s.Record(ctx, early))

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "mid-second", runs[0].ID, "newest first")
	assert.Equal(t, "on-boundary", runs[1].ID)
	assert.True(t, runs[0].CreatedAt.Equal(late.CreatedAt), "round-trip preserves nanoseconds")
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := Run{ID: "dup", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Record(ctx, r))
	assert.Error(t, s.Record(ctx, r))
}

func TestNewRunSnapshots(t *testing.T) {
	in := sim.NewInput("ACGTACGT", "TTTTAAAA", "ACGTACGTACGTACGT")
	in.TemplateID = "tpl"
	in.Circular = true
	res := &sim.Result{IsSpecific: true}

	r := NewRun(in, res)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "tpl", r.TemplateID)
	assert.True(t, r.Circular)
	assert.True(t, r.Specific)
	assert.Zero(t, r.Amplicons)
	assert.WithinDuration(t, time.Now().UTC(), r.CreatedAt, time.Minute)
}
