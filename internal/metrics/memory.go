package metrics

import (
	"runtime"
	"time"

	"github.com/agbru/agecalc/internal/logging"
)

// MemorySnapshot is the runtime memory picture printed by --verbose after a
// batch settles.
type MemorySnapshot struct {
	HeapInUse uint64 // live heap bytes
	Allocated uint64 // bytes allocated since start
	FromOS    uint64 // bytes reserved from the OS
	GCCycles  uint32
	GCPause   time.Duration // total stop-the-world time
}

// ReadMemory samples the Go runtime.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapInUse: m.HeapAlloc,
		Allocated: m.TotalAlloc,
		FromOS:    m.Sys,
		GCCycles:  m.NumGC,
		GCPause:   time.Duration(m.PauseTotalNs),
	}
}

// LogFields renders the snapshot as structured log fields.
func (s MemorySnapshot) LogFields() []logging.Field {
	return []logging.Field{
		logging.Uint64("heap_in_use", s.HeapInUse),
		logging.Uint64("allocated", s.Allocated),
		logging.Uint64("from_os", s.FromOS),
		logging.Int("gc_cycles", int(s.GCCycles)),
		logging.Duration("gc_pause", s.GCPause),
	}
}
