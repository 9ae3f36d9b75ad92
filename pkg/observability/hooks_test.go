package observability

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

type recorder struct {
	name   string
	events *[]string
	NoopPipelineHooks
}

func (r recorder) OnRebuild(context.Context, string, int, int, time.Duration) {
	*r.events = append(*r.events, r.name)
}

func TestRegistryDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should be a no-op with nothing registered")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should be a no-op with nothing registered")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should be a no-op with nothing registered")
	}
}

func TestRegisterFansOut(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var events []string
	Register(recorder{name: "first", events: &events})
	Register(recorder{name: "second", events: &events})

	Pipeline().OnRebuild(context.Background(), "overlap", 3, 1, time.Millisecond)
	if want := []string{"first", "second"}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}

	Reset()
	Pipeline().OnRebuild(context.Background(), "overlap", 3, 1, time.Millisecond)
	if len(events) != 2 {
		t.Errorf("Reset left listeners behind: %v", events)
	}
}

func TestRegisterMatchesCategories(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	tests := []struct {
		name string
		h    any
		want bool
	}{
		{"Counters", &Counters{}, true},
		{"CacheOnly", NoopCacheHooks{}, true},
		{"Unrelated", "not a hook", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Register(tt.h); got != tt.want {
				t.Errorf("Register() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCounters(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	c := &Counters{}
	Register(c)
	ctx := context.Background()

	Pipeline().OnLoadComplete(ctx, "file:a.json", 3, time.Millisecond, nil)
	Pipeline().OnLoadComplete(ctx, "file:a.json", 0, time.Millisecond, errors.New("gone"))
	Pipeline().OnRebuild(ctx, "explicit", 4, 2, time.Microsecond)
	Pipeline().OnExportComplete(ctx, "png", "graph-0123abcd.png", 4096, time.Second, nil)
	Cache().OnCacheHit(ctx, "snapshot:png:x")
	Cache().OnCacheMiss(ctx, "snapshot:png:y")
	Cache().OnCacheMiss(ctx, "dataset:z")
	Server().OnRequest(ctx, "req-1", "GET", "/api/view", 200, time.Millisecond)
	Server().OnRequest(ctx, "req-2", "GET", "/api/view", 503, time.Millisecond)

	want := CounterSnapshot{
		Loads: 2, LoadErrors: 1, Rebuilds: 1, Exports: 1,
		CacheHits: 1, CacheMisses: 2, Requests: 2, ServerErrors: 1,
	}
	if got := c.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
