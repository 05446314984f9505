//go:build profile

package profiler

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Enabled reports whether scopes are recorded in this build.
const Enabled = true

var errNoEvents = errors.New("no events recorded")

// Init allocates the event ring. capacity is the number of open and close
// events kept; older ones are overwritten. Scope totals are cleared.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	events.reset(capacity)
	scopes.clear()
}

// Start opens the scope name and returns the func closing it. Scopes must
// close in reverse order of opening, as deferred calls do.
func Start(name string) func() {
	if !events.on.Load() {
		return func() {}
	}
	id := scopes.id(name)
	t0 := time.Now()
	at := t0.UnixNano()
	events.push(event{at: at, scope: id, open: true})
	return func() {
		d := time.Since(t0)
		events.push(event{at: at + int64(d), scope: id})
		scopes.add(id, d)
	}
}

// Scopes returns the totals of every scope closed since Init, the one with
// the most time first.
func Scopes() []ScopeStat {
	return scopes.snapshot()
}

// Scope returns the totals of the scope name.
func Scope(name string) (ScopeStat, bool) {
	return scopes.get(name)
}

// WriteSpeedscope encodes the events still in the ring as an evented
// speedscope profile.
func WriteSpeedscope(w io.Writer) error {
	doc, err := toSpeedscope(events.snapshot(), scopes.names())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// Dump writes the profile next to the other temp files and starts the
// speedscope viewer on it. The viewer failing to start is not an error;
// the path is still returned.
func Dump() (string, error) {
	path := filepath.Join(os.TempDir(), "grove-inspector.speedscope.json")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	if err := WriteSpeedscope(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("profiler: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}

	cmd := exec.Command("speedscope", path)
	hideConsole(cmd)
	_ = cmd.Start()
	return path, nil
}

// ===== Event ring =====

type event struct {
	at    int64 // unix ns
	scope int32
	open  bool
}

type ring struct {
	on   atomic.Bool
	size uint64
	next atomic.Uint64
	buf  []event
}

func (r *ring) reset(capacity int) {
	r.on.Store(false)
	r.size = uint64(capacity)
	r.buf = make([]event, capacity)
	r.next.Store(0)
	r.on.Store(true)
}

func (r *ring) push(e event) {
	i := r.next.Add(1) - 1
	r.buf[i%r.size] = e
}

// snapshot returns the events in write order.
func (r *ring) snapshot() []event {
	n := r.next.Load()
	if n == 0 {
		return nil
	}
	first := uint64(0)
	if n > r.size {
		first = n - r.size
	}
	out := make([]event, 0, n-first)
	for i := first; i < n; i++ {
		out = append(out, r.buf[i%r.size])
	}
	return out
}

var events ring

// ===== Scope table =====

type scopeTable struct {
	mu     sync.Mutex
	ids    map[string]int32
	totals []ScopeStat
}

var scopes = scopeTable{ids: map[string]int32{}}

func (t *scopeTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.totals {
		t.totals[i] = ScopeStat{Name: t.totals[i].Name}
	}
}

func (t *scopeTable) id(name string) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := int32(len(t.totals))
	t.ids[name] = id
	t.totals = append(t.totals, ScopeStat{Name: name})
	return id
}

func (t *scopeTable) add(id int32, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.totals[id]
	s.Calls++
	s.Total += d
	s.Max = max(s.Max, d)
}

func (t *scopeTable) get(name string) (ScopeStat, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.ids[name]
	if !ok {
		return ScopeStat{}, false
	}
	return t.totals[id], true
}

func (t *scopeTable) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.totals))
	for i, s := range t.totals {
		out[i] = s.Name
	}
	return out
}

func (t *scopeTable) snapshot() []ScopeStat {
	t.mu.Lock()
	out := slices.Clone(t.totals)
	t.mu.Unlock()
	out = slices.DeleteFunc(out, func(s ScopeStat) bool { return s.Calls == 0 })
	slices.SortStableFunc(out, func(a, b ScopeStat) int { return cmp.Compare(b.Total, a.Total) })
	return out
}

// ===== Speedscope =====

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

// ssEvent opens (O) or closes (C) frame at microsecond At.
type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

// toSpeedscope converts the ring events into one evented profile. Closes
// whose open was overwritten in the ring are dropped, and scopes still
// open at the end are closed at the last timestamp.
func toSpeedscope(evs []event, names []string) (ssFile, error) {
	if len(evs) == 0 {
		return ssFile{}, errNoEvents
	}
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var open []int32
	var last int64
	for _, e := range evs {
		at := max(last, (e.at-base)/1000)
		switch {
		case e.open:
			open = append(open, e.scope)
			out = append(out, ssEvent{Type: "O", At: at, Frame: int(e.scope)})
		case len(open) > 0 && open[len(open)-1] == e.scope:
			open = open[:len(open)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: int(e.scope)})
		default:
			continue
		}
		last = at
	}
	for i := len(open) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: int(open[i])})
	}

	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "inspector frames",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "grove-inspector",
		Name:     "grove-inspector capture",
	}, nil
}
