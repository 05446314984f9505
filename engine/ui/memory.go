package ui

// Memory is the persistent id-keyed store of the host. Entries outlive
// frames; Prune drops the ones nobody touched for a while.
type Memory struct {
	data  map[ID]memEntry
	frame uint64
}

type memEntry struct {
	val  any
	seen uint64
}

func NewMemory() *Memory {
	return &Memory{data: make(map[ID]memEntry, 256)}
}

func (m *Memory) Get(id ID) (any, bool) {
	e, ok := m.data[id]
	if !ok {
		return nil, false
	}
	e.seen = m.frame
	m.data[id] = e
	return e.val, true
}

func (m *Memory) Set(id ID, v any) {
	m.data[id] = memEntry{val: v, seen: m.frame}
}

func (m *Memory) Delete(id ID) { delete(m.data, id) }

func (m *Memory) Len() int { return len(m.data) }

// Tick advances the frame counter used by Prune.
func (m *Memory) Tick() { m.frame++ }

// Prune removes entries not read or written during the last maxAge frames
// and returns how many were removed.
func (m *Memory) Prune(maxAge uint64) int {
	n := 0
	for id, e := range m.data {
		if m.frame-e.seen > maxAge {
			delete(m.data, id)
			n++
		}
	}
	return n
}

// Load returns the value stored under id if it has type T.
func Load[T any](m *Memory, id ID) (T, bool) {
	v, ok := m.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// LoadOr returns the value stored under id, storing and returning def when
// there is none.
func LoadOr[T any](m *Memory, id ID, def T) T {
	if v, ok := Load[T](m, id); ok {
		return v
	}
	m.Set(id, def)
	return def
}
