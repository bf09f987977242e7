package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/kv"
	"github.com/burakkosova/mapty/internal/workout"
)

var errBackend = errors.New("backend down")

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBackend }
func (failingKV) Set(context.Context, string, string) error         { return errBackend }
func (failingKV) Remove(context.Context, string) error              { return errBackend }

func sample() []workout.Workout {
	at := time.Date(2024, time.June, 1, 7, 0, 0, 0, time.UTC)
	return []workout.Workout{
		workout.NewRunning(geo.Coords{Lat: 51.5, Lng: -0.12}, 5, 25, 180, at),
		workout.NewCycling(geo.Coords{Lat: 51.6, Lng: -0.1}, 20, 60, 150, at.Add(time.Hour)),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(kv.NewMemory(), "")
	in := sample()

	if err := s.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := s.Load(context.Background())
	if len(out) != len(in) {
		t.Fatalf("expected %d workouts, got %d", len(in), len(out))
	}
	for i := range in {
		a, b := in[i], out[i]
		if a.ID != b.ID || a.Type != b.Type || a.Description != b.Description || a.Coords != b.Coords ||
			a.Distance != b.Distance || a.Duration != b.Duration || !a.Date.Equal(b.Date) {
			t.Fatalf("workout %d differs: %+v vs %+v", i, a, b)
		}
		if a.Metric() != b.Metric() || a.Extra() != b.Extra() {
			t.Fatalf("derived fields differ at %d", i)
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	backend := kv.NewMemory()
	s := New(backend, "workouts")
	all := sample()

	_ = s.Save(context.Background(), all)
	_ = s.Save(context.Background(), all[:1])

	if got := s.Load(context.Background()); len(got) != 1 {
		t.Fatalf("expected overwrite, got %d workouts", len(got))
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	backend := kv.NewMemory()
	s := New(backend, "workouts")
	if err := s.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok, _ := backend.Get(context.Background(), "workouts")
	if !ok || raw != "[]" {
		t.Fatalf("unexpected slot: %q", raw)
	}
}

func TestLoadMissingOrCorrupt(t *testing.T) {
	backend := kv.NewMemory()
	s := New(backend, "workouts")
	ctx := context.Background()

	if got := s.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty for missing slot")
	}

	for _, raw := range []string{
		"null",
		"{not json",
		`[{"coords":[1,2],"type":"running","distance":5,"duration":25},{"coords":[1,2],"type":"rowing"}]`,
		`[{"coords":[1],"type":"running"}]`,
	} {
		_ = backend.Set(ctx, "workouts", raw)
		if got := s.Load(ctx); len(got) != 0 {
			t.Fatalf("expected empty for %q, got %d", raw, len(got))
		}
	}
}

func TestLoadBrowserSavedList(t *testing.T) {
	backend := kv.NewMemory()
	raw := `[{"coords":[51.5,-0.12],"distance":5,"duration":25,"date":"2024-06-01T07:00:00.000Z","id":"7225200000","cadence":180,"pace":"5.0","type":"running","description":"Running on June 1"}]`
	_ = backend.Set(context.Background(), "workouts", raw)

	got := New(backend, "workouts").Load(context.Background())
	if len(got) != 1 || got[0].Running == nil || got[0].Running.Pace != 5 {
		t.Fatalf("unexpected reload: %+v", got)
	}
}

func TestClear(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	s := New(kv.NewRedis(client, "mapty:"), "workouts")
	_ = s.Save(context.Background(), sample())
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if server.Exists("mapty:workouts") {
		t.Fatalf("expected slot removed")
	}
	if got := s.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty after clear")
	}
}

func TestBackendFailures(t *testing.T) {
	s := New(failingKV{}, "workouts")
	if err := s.Save(context.Background(), sample()); !errors.Is(err, errBackend) {
		t.Fatalf("expected save error, got %v", err)
	}
	if err := s.Clear(context.Background()); !errors.Is(err, errBackend) {
		t.Fatalf("expected clear error, got %v", err)
	}
	if got := s.Load(context.Background()); got != nil {
		t.Fatalf("expected nil on load failure")
	}
}
