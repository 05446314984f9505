package profiler

import (
	"runtime"
	"time"
)

// ScopeStat is the time spent in one named scope since Init.
type ScopeStat struct {
	Name  string
	Calls int
	Total time.Duration
	Max   time.Duration
}

// Mean is the average time of one call.
func (s ScopeStat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Stats is a snapshot of the process counters shown in the demo's status
// line.
type Stats struct {
	HeapAlloc  uint64
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

func ReadStats() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:  m.HeapAlloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}
