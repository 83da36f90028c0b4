package common

import (
	"fmt"
	"runtime"
)

// MemoryStats holds the heap figures reported after batch runs.
type MemoryStats struct {
	HeapAlloc  uint64
	TotalAlloc uint64
	Sys        uint64
	NumGC      uint32
}

// GetMemoryStats returns current heap statistics.
func GetMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// String returns a human-readable summary in MiB.
func (s MemoryStats) String() string {
	const mib = 1024 * 1024
	return fmt.Sprintf("heap=%dMiB total=%dMiB sys=%dMiB gc=%d",
		s.HeapAlloc/mib, s.TotalAlloc/mib, s.Sys/mib, s.NumGC)
}
