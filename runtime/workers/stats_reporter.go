package workers

import (
	"context"
	"log/slog"
	"time"

	"support-chat/contract"
	"support-chat/observability"
)

// StatsReporter logs a one-line summary of presence and process health.
type StatsReporter struct {
	relay    contract.IRelay
	monitor  *observability.Monitor
	interval time.Duration
	log      *slog.Logger
}

func NewStatsReporter(relay contract.IRelay, monitor *observability.Monitor, interval time.Duration, log *slog.Logger) *StatsReporter {
	return &StatsReporter{relay: relay, monitor: monitor, interval: interval, log: log}
}

// Run reports every interval and once more on the way out.
func (w *StatsReporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report()
			w.log.Debug("Reporter stopped")
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *StatsReporter) report() {
	stats := w.monitor.Latest()
	w.log.Info("Server stats",
		"uptime", w.monitor.Uptime().Round(time.Second).String(),
		"connectedUsers", len(w.relay.ConnectedUsers()),
		"heapMb", stats.HeapAllocBytes>>20,
		"rssMb", stats.RSSBytes>>20,
		"cpuPercent", stats.CPUPercent,
		"goroutines", stats.Goroutines,
	)
}
