package docstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Op names a store operation for the Memory operation log and fault injection.
type Op string

const (
	OpGet    Op = "get"
	OpList   Op = "list"
	OpWhere  Op = "where"
	OpSet    Op = "set"
	OpMerge  Op = "merge"
	OpDelete Op = "delete"
	OpCommit Op = "commit"
)

// Memory is an in-process Store. Values are copied through their JSON form on
// every read and write, matching what the PostgreSQL backend persists.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]map[string][]byte
	ops    []Op
	faults map[Op]error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:   make(map[string]map[string][]byte),
		faults: make(map[Op]error),
	}
}

// InjectFault makes every subsequent call of op fail with err until cleared.
func (m *Memory) InjectFault(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op] = err
}

// ClearFaults removes every injected fault.
func (m *Memory) ClearFaults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.faults)
}

// Ops returns the operations performed so far, in call order.
func (m *Memory) Ops() []Op {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.ops)
}

// Count returns the number of documents stored in collection.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

func (m *Memory) NewID() string {
	return NewID()
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := m.begin(ctx, OpGet); err != nil {
		return nil, err
	}
	if err := validateRef(collection, id); err != nil {
		return nil, err
	}

	m.mu.RLock()
	raw, ok := m.data[collection][id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Collection: collection, ID: id, Data: data}, nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	if err := m.begin(ctx, OpList); err != nil {
		return nil, err
	}
	return m.collect(collection, func(map[string]any) bool { return true })
}

func (m *Memory) Where(ctx context.Context, collection, field, value string) ([]Document, error) {
	if err := m.begin(ctx, OpWhere); err != nil {
		return nil, err
	}
	if err := validateField(field); err != nil {
		return nil, err
	}
	return m.collect(collection, func(data map[string]any) bool {
		s, ok := data[field].(string)
		return ok && s == value
	})
}

func (m *Memory) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if err := m.begin(ctx, OpSet); err != nil {
		return err
	}

	w := write{kind: opSet, collection: collection, id: id, data: data}
	staged, err := stage(w)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(w, staged)
	return nil
}

func (m *Memory) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	if err := m.begin(ctx, OpMerge); err != nil {
		return err
	}
	if err := validateRef(collection, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[collection][id]
	if !ok {
		return ErrNotFound
	}

	current, err := decode(raw)
	if err != nil {
		return err
	}
	maps.Copy(current, data)

	merged, err := encode(current)
	if err != nil {
		return err
	}
	m.data[collection][id] = merged
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := m.begin(ctx, OpDelete); err != nil {
		return err
	}
	if err := validateRef(collection, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[collection], id)
	return nil
}

func (m *Memory) Batch() Batch {
	return &memBatch{store: m}
}

type memBatch struct {
	store  *Memory
	writes []write
}

func (b *memBatch) Set(collection, id string, data map[string]any) {
	b.writes = append(b.writes, write{kind: opSet, collection: collection, id: id, data: data})
}

func (b *memBatch) Delete(collection, id string) {
	b.writes = append(b.writes, write{kind: opDelete, collection: collection, id: id})
}

func (b *memBatch) Len() int {
	return len(b.writes)
}

// Commit validates and encodes every write before touching the maps, so a
// failure leaves the store unchanged.
func (b *memBatch) Commit(ctx context.Context) error {
	if err := b.store.begin(ctx, OpCommit); err != nil {
		return fmt.Errorf("commit batch of %d writes: %w", len(b.writes), err)
	}

	staged := make([][]byte, len(b.writes))
	for i, w := range b.writes {
		raw, err := stage(w)
		if err != nil {
			return fmt.Errorf("commit batch of %d writes: %w", len(b.writes), err)
		}
		staged[i] = raw
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for i, w := range b.writes {
		b.store.put(w, staged[i])
	}
	return nil
}

func (m *Memory) begin(ctx context.Context, op Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, op)

	if err := ctx.Err(); err != nil {
		return err
	}
	return m.faults[op]
}

func (m *Memory) collect(collection string, match func(map[string]any) bool) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(m.data[collection]))
	docs := make([]Document, 0, len(ids))

	for _, id := range ids {
		data, err := decode(m.data[collection][id])
		if err != nil {
			return nil, err
		}
		if match(data) {
			docs = append(docs, Document{Collection: collection, ID: id, Data: data})
		}
	}
	return docs, nil
}

// put applies a staged write. Callers hold m.mu.
func (m *Memory) put(w write, raw []byte) {
	if w.kind == opDelete {
		delete(m.data[w.collection], w.id)
		return
	}
	if m.data[w.collection] == nil {
		m.data[w.collection] = make(map[string][]byte)
	}
	m.data[w.collection][w.id] = raw
}

func stage(w write) ([]byte, error) {
	if err := validateRef(w.collection, w.id); err != nil {
		return nil, err
	}
	if w.kind == opDelete {
		return nil, nil
	}
	return encode(w.data)
}
