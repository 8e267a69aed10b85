package docstore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/schedease/pkg/docstore"
)

type room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Building string `json:"building"`
}

func (r *room) DocumentID() string      { return r.ID }
func (r *room) SetDocumentID(id string) { r.ID = id }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRooms() (*docstore.Memory, *docstore.Collection[room, *room]) {
	store := docstore.NewMemory()
	return store, docstore.NewCollection[room](store, "rooms", discard)
}

func TestCollectionCreateGet(t *testing.T) {
	ctx := context.Background()
	_, rooms := newRooms()

	in := room{ID: "ignored", Name: "Lab A", Capacity: 30, Building: "North"}
	id, err := rooms.Create(ctx, &in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" || id == "ignored" {
		t.Fatalf("id = %q, want store-generated id", id)
	}

	got, ok, err := rooms.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}

	want := in
	want.ID = id
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCollectionGetMissing(t *testing.T) {
	_, rooms := newRooms()

	_, ok, err := rooms.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if ok {
		t.Error("ok = true for missing document")
	}
}

func TestCollectionUpdateForcesID(t *testing.T) {
	ctx := context.Background()
	_, rooms := newRooms()

	id, _ := rooms.Create(ctx, &room{Name: "Lab A", Capacity: 30, Building: "North"})

	replacement := room{ID: "other", Name: "Lab B"}
	if err := rooms.Update(ctx, id, &replacement); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _, _ := rooms.Get(ctx, id)
	want := room{ID: id, Name: "Lab B"}
	if got != want {
		t.Errorf("got %+v, want %+v (full replace)", got, want)
	}
}

func TestCollectionDefaultsAndKeyFallback(t *testing.T) {
	ctx := context.Background()
	store, rooms := newRooms()

	store.Set(ctx, "rooms", "legacy", map[string]any{"name": "Hall"})

	got, ok, err := rooms.Get(ctx, "legacy")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.ID != "legacy" || got.Capacity != 0 || got.Building != "" {
		t.Errorf("got %+v, want id from key and zero defaults", got)
	}
}

func TestCollectionListAndDelete(t *testing.T) {
	ctx := context.Background()
	_, rooms := newRooms()

	a, _ := rooms.Create(ctx, &room{Name: "A"})
	rooms.Create(ctx, &room{Name: "B"})

	items, err := rooms.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	for range 2 {
		if err := rooms.Delete(ctx, a); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	}

	items, _ = rooms.List(ctx)
	if len(items) != 1 {
		t.Errorf("len = %d, want 1", len(items))
	}
}

func TestCollectionSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	store, rooms := newRooms()

	store.Set(ctx, "rooms", "a", map[string]any{"name": "A", "capacity": 30})
	store.Set(ctx, "rooms", "b", map[string]any{"name": "B", "capacity": 30.5})

	items, err := rooms.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("items = %+v, want only a", items)
	}

	if _, _, err := rooms.Get(ctx, "b"); !errors.Is(err, docstore.ErrMalformed) {
		t.Errorf("Get malformed: got %v, want ErrMalformed", err)
	}
}
