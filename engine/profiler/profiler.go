//go:build profile

// Package profiler records nested timing spans (ticks, transfers, rebuilds)
// into a fixed ring and exports them for speedscope.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once with the ring capacity in span events.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	events.init(capacity)
}

// Start opens a span and returns the func that closes it.
func Start(name string) func() {
	if !events.ready.Load() {
		return func() {}
	}
	id := intern(name)
	open := time.Now().UnixNano()
	events.push(event{at: open, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < open {
			end = open
		}
		events.push(event{at: end, frame: id})
	}
}

// Dump writes the recorded spans as a speedscope document into dir and
// returns the file path.
func Dump(dir string) (string, error) {
	evs := events.snapshot()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no events to dump")
	}
	path := filepath.Join(dir, "glhost.speedscope.json")
	if err := writeSpeedscope(evs, path); err != nil {
		return "", err
	}
	return path, nil
}

type event struct {
	at    int64
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []event
}

func (r *eventRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]event, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var events eventRing

var (
	namesMu sync.Mutex
	names   []string
	nameIDs = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := nameIDs[name]; ok {
		return id
	}
	id := len(names)
	nameIDs[name] = id
	names = append(names, name)
	return id
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
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

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

func writeSpeedscope(evs []event, path string) error {
	namesMu.Lock()
	frames := make([]ssFrame, len(names))
	for i, name := range names {
		frames[i] = ssFrame{Name: name}
	}
	namesMu.Unlock()

	base := evs[0].at
	var last, end int64 = -1, 0
	out := make([]ssEvent, 0, len(evs))
	stack := make([]int, 0, 16)

	for _, e := range evs {
		at := (e.at - base) / 1000
		if at < last {
			at = last
		}
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			// the ring may have dropped the matching open
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
		if at > end {
			end = at
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "glhost ticks",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "glhost-profiler",
		Name:     "glhost capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
