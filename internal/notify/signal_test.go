package notify

import (
	"errors"
	"testing"
)

func TestSignalMessage(t *testing.T) {
	cases := []struct {
		sig  Signal
		want string
	}{
		{Signal{Op: OpAdded, Entity: EntityTask, Name: "Buy milk"}, `Task "Buy milk" added`},
		{Signal{Op: OpUpdated, Entity: EntityTask, Name: "Buy milk"}, `Task "Buy milk" updated`},
		{Signal{Op: OpDeleted, Entity: EntityTask}, `Task "Unknown" deleted`},
		{Signal{Op: OpDeleted, Entity: EntityCategory, Name: "Work"}, `Category "Work" deleted`},
		{Signal{Op: OpUpdated, Entity: EntitySettings}, "Settings updated"},
		{Signal{Op: OpReset, Entity: EntityStore}, "All data has been reset"},
		{Signal{Op: OpLoadFailed, Entity: EntityStore, Err: errors.New("boom")}, "Failed to load data from local storage"},
		{Signal{Op: OpSaveFailed, Entity: EntityStore}, "Failed to save data to local storage"},
	}
	for _, tc := range cases {
		if got := tc.sig.Message(); got != tc.want {
			t.Fatalf("Message() = %q, want %q", got, tc.want)
		}
	}
}

func TestBufferKeepsMostRecent(t *testing.T) {
	b := NewBuffer(2)
	b.Notify(Signal{Name: "a"})
	b.Notify(Signal{Name: "b", Level: LevelError})
	b.Notify(Signal{Name: "c"})

	got := b.Signals()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("unexpected buffer contents: %+v", got)
	}
	if errs := b.Errors(); len(errs) != 1 || errs[0].Name != "b" {
		t.Fatalf("unexpected error signals: %+v", errs)
	}
	if last, ok := b.Last(); !ok || last.Name != "c" {
		t.Fatalf("unexpected last signal: %+v", last)
	}
	if drained := b.Drain(); len(drained) != 2 {
		t.Fatalf("drain returned %d signals", len(drained))
	}
	if _, ok := b.Last(); ok {
		t.Fatal("expected empty buffer after drain")
	}
}

func TestMultiSkipsNilSinks(t *testing.T) {
	var seen []string
	b := NewBuffer(0)
	sink := Multi(nil, Func(func(s Signal) { seen = append(seen, s.Name) }), b, Discard)
	sink.Notify(Signal{Name: "x"})
	if len(seen) != 1 || seen[0] != "x" {
		t.Fatalf("func sink not called: %v", seen)
	}
	if _, ok := b.Last(); !ok {
		t.Fatal("buffer sink not called")
	}
}
