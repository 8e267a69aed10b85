package courses_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/schedease/internal/courses"
	"github.com/JaimeStill/schedease/pkg/docstore"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func sampleCourse() courses.Course {
	return courses.Course{
		Name:        "Algorithms",
		Description: "Graphs and dynamic programming",
		TeacherID:   "t1",
		SubjectID:   "s1",
		MaxStudents: 30,
		Schedule:    "MON 09:00-11:00",
		RoomID:      "r1",
	}
}

func newSystem() (courses.System, *docstore.Memory) {
	store := docstore.NewMemory()
	return courses.New(store, discard), store
}

func TestCreateThenFind(t *testing.T) {
	sys, _ := newSystem()
	ctx := context.Background()

	in := sampleCourse()
	in.ID = "caller-chosen"

	id, err := sys.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" || id == "caller-chosen" {
		t.Fatalf("id should be store-assigned, got %q", id)
	}

	got, err := sys.Find(ctx, id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := sampleCourse()
	want.ID = id
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestUpdateForcesID(t *testing.T) {
	sys, _ := newSystem()
	ctx := context.Background()

	id, err := sys.Create(ctx, sampleCourse())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	replacement := courses.Course{ID: "other", Name: "Compilers"}
	if err := sys.Update(ctx, id, replacement); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := sys.Find(ctx, id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := courses.Course{ID: id, Name: "Compilers"}
	if *got != want {
		t.Errorf("full replace: got %+v, want %+v", *got, want)
	}

	if _, err := sys.Find(ctx, "other"); !errors.Is(err, courses.ErrNotFound) {
		t.Errorf("caller id should not create a document: %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	sys, _ := newSystem()
	ctx := context.Background()

	id, err := sys.Create(ctx, sampleCourse())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := range 2 {
		if err := sys.Delete(ctx, id); err != nil {
			t.Fatalf("Delete #%d: %v", i+1, err)
		}
	}

	if _, err := sys.Find(ctx, id); !errors.Is(err, courses.ErrNotFound) {
		t.Errorf("Find after delete: got %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	sys, _ := newSystem()
	ctx := context.Background()

	empty, err := sys.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty list: got %d", len(empty))
	}

	for range 3 {
		if _, err := sys.Create(ctx, sampleCourse()); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := sys.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("list length: got %d, want 3", len(items))
	}
	for _, c := range items {
		if c.ID == "" {
			t.Error("listed course missing id")
		}
	}
}

func TestListMissingFieldsDefault(t *testing.T) {
	sys, store := newSystem()
	ctx := context.Background()

	if err := store.Set(ctx, courses.Collection, "legacy", map[string]any{"name": "Legacy"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := sys.Find(ctx, "legacy")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.ID != "legacy" || got.Name != "Legacy" || got.MaxStudents != 0 {
		t.Errorf("got %+v", *got)
	}
}

func TestListSkipsMalformedCourse(t *testing.T) {
	sys, store := newSystem()
	ctx := context.Background()

	store.Set(ctx, courses.Collection, "good", map[string]any{"name": "Good", "maxStudents": 30})
	store.Set(ctx, courses.Collection, "bad", map[string]any{"name": "Bad", "maxStudents": 30.5})

	list, err := sys.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != "good" {
		t.Errorf("list = %+v, want only good", list)
	}
}

func TestCreateRejectsNegativeCapacity(t *testing.T) {
	sys, store := newSystem()

	c := sampleCourse()
	c.MaxStudents = -1

	_, err := sys.Create(context.Background(), c)
	if !errors.Is(err, courses.ErrInvalidCourse) {
		t.Fatalf("got %v, want ErrInvalidCourse", err)
	}
	if store.Count(courses.Collection) != 0 {
		t.Error("invalid course should not be written")
	}
}

func TestStoreFailure(t *testing.T) {
	sys, store := newSystem()
	boom := errors.New("store unavailable")
	store.InjectFault(docstore.OpSet, boom)

	_, err := sys.Create(context.Background(), sampleCourse())
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{courses.ErrNotFound, 404},
		{courses.ErrInvalidCourse, 400},
		{errors.New("other"), 500},
	}

	for _, tt := range tests {
		if got := courses.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
