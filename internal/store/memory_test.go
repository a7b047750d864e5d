package store

import (
	"context"
	"errors"
	"testing"
)

type note struct {
	Owner string `bson:"owner"`
	Text  string `bson:"text"`
}

func TestMemoryInsertAssignsID(t *testing.T) {
	mem := NewMemory()

	id, err := mem.Insert(context.Background(), "note", note{Owner: "a", Text: "first"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(id) != 24 {
		t.Errorf("id = %q, want 24-char object id hex", id)
	}

	id2, err := mem.Insert(context.Background(), "note", note{Owner: "a", Text: "second"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == id2 {
		t.Errorf("both inserts returned id %q, want distinct ids", id)
	}
}

func TestMemoryFindOneRoundTrip(t *testing.T) {
	mem := NewMemory()
	if _, err := mem.Insert(context.Background(), "note", note{Owner: "a", Text: "hello"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got note
	if err := mem.FindOne(context.Background(), "note", Filter{"owner": "a"}, &got); err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("text = %q, want %q", got.Text, "hello")
	}
}

func TestMemoryFindOneNotFound(t *testing.T) {
	mem := NewMemory()

	var got note
	err := mem.FindOne(context.Background(), "note", Filter{"owner": "missing"}, &got)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryFindFiltersAndLimits(t *testing.T) {
	mem := NewMemory()
	for i := 0; i < 5; i++ {
		if _, err := mem.Insert(context.Background(), "note", note{Owner: "a", Text: "x"}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if _, err := mem.Insert(context.Background(), "note", note{Owner: "b", Text: "y"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var owned []note
	if err := mem.Find(context.Background(), "note", Filter{"owner": "a"}, 0, &owned); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(owned) != 5 {
		t.Errorf("owned = %d docs, want 5", len(owned))
	}

	var capped []note
	if err := mem.Find(context.Background(), "note", Filter{"owner": "a"}, 3, &capped); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(capped) != 3 {
		t.Errorf("capped = %d docs, want 3", len(capped))
	}
}

func TestMemoryCollectionsAreIsolated(t *testing.T) {
	mem := NewMemory()
	if _, err := mem.Insert(context.Background(), "note", note{Owner: "a"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got []note
	if err := mem.Find(context.Background(), "other", Filter{}, 0, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("other collection holds %d docs, want 0", len(got))
	}
}

func TestMemoryCollectionNames(t *testing.T) {
	mem := NewMemory()
	for _, coll := range []string{"task", "employee", "session"} {
		if _, err := mem.Insert(context.Background(), coll, note{Owner: "a"}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	names, err := mem.CollectionNames(context.Background())
	if err != nil {
		t.Fatalf("collectionNames: %v", err)
	}
	want := []string{"employee", "session", "task"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestUnavailableStoreFailsEveryOperation(t *testing.T) {
	var st Store = Unavailable{}

	if _, err := st.Insert(context.Background(), "task", note{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("insert err = %v, want ErrUnavailable", err)
	}
	var out []note
	if err := st.Find(context.Background(), "task", Filter{}, 0, &out); !errors.Is(err, ErrUnavailable) {
		t.Errorf("find err = %v, want ErrUnavailable", err)
	}
	var one note
	if err := st.FindOne(context.Background(), "task", Filter{}, &one); !errors.Is(err, ErrUnavailable) {
		t.Errorf("findOne err = %v, want ErrUnavailable", err)
	}
	if err := st.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ping err = %v, want ErrUnavailable", err)
	}
}
