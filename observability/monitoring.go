package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a point-in-time view of the server process.
type ProcessStats struct {
	PID            int32   `json:"pid"`
	CPUPercent     float64 `json:"cpuPercent"`
	MemoryPercent  float32 `json:"memoryPercent"`
	RSSBytes       uint64  `json:"rssBytes"`
	HeapAllocBytes uint64  `json:"heapAllocBytes"`
	SysBytes       uint64  `json:"sysBytes"`
	NumGC          uint32  `json:"numGC"`
	Goroutines     int     `json:"goroutines"`
}

// Monitor samples the current process on a fixed interval and serves the
// latest sample to /status and /health without blocking them on syscalls.
type Monitor struct {
	log       *slog.Logger
	startedAt time.Time
	proc      *process.Process

	mu     sync.RWMutex
	latest ProcessStats
}

func NewMonitor(log *slog.Logger) *Monitor {
	m := &Monitor{log: log, startedAt: time.Now()}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process stats unavailable, falling back to runtime stats", "error", err)
	} else {
		m.proc = proc
	}
	m.sample()
	return m
}

// Run refreshes the sample every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Monitor stopped")
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *Monitor) Latest() ProcessStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.startedAt)
}

func (m *Monitor) sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats := ProcessStats{
		PID:            int32(os.Getpid()),
		HeapAllocBytes: mem.HeapAlloc,
		SysBytes:       mem.Sys,
		NumGC:          mem.NumGC,
		Goroutines:     runtime.NumGoroutine(),
	}
	if m.proc != nil {
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		} else {
			m.log.Debug("Error while reading process cpu usage", "error", err)
		}
		if ram, err := m.proc.MemoryPercent(); err == nil {
			stats.MemoryPercent = ram
		}
		if info, err := m.proc.MemoryInfo(); err == nil && info != nil {
			stats.RSSBytes = info.RSS
		}
	}

	m.mu.Lock()
	m.latest = stats
	m.mu.Unlock()
}
