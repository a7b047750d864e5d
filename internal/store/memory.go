package store

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by tests in place of a real database.
// Documents are kept per collection in insertion order, which doubles as the
// store-native order for Find.
type Memory struct {
	mu          sync.Mutex
	collections map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]bson.M)}
}

func (m *Memory) Insert(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := toDocument(doc)
	if err != nil {
		return "", err
	}

	id, ok := raw["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		raw["_id"] = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], raw)
	return id.Hex(), nil
}

func (m *Memory) Find(ctx context.Context, collection string, filter Filter, limit int64, out any) error {
	m.mu.Lock()
	var matched []bson.M
	for _, doc := range m.collections[collection] {
		if !matchesFilter(doc, filter) {
			continue
		}
		matched = append(matched, doc)
		if limit > 0 && int64(len(matched)) == limit {
			break
		}
	}
	m.mu.Unlock()

	return decodeAll(matched, out)
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.collections[collection] {
		if matchesFilter(doc, filter) {
			return decodeOne(doc, out)
		}
	}
	return ErrNotFound
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) CollectionNames(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func toDocument(doc any) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeOne(doc bson.M, out any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}

func decodeAll(docs []bson.M, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errors.New("out must be a pointer to a slice")
	}

	slice := v.Elem()
	elemType := slice.Type().Elem()
	for _, doc := range docs {
		elem := reflect.New(elemType)
		if err := decodeOne(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	v.Elem().Set(slice)
	return nil
}

func matchesFilter(doc bson.M, filter Filter) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
