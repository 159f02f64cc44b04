package workers

import (
	"context"
	"time"

	"support-chat/observability"
)

// ProcessSampler keeps the monitor's process snapshot fresh for /status and /health.
type ProcessSampler struct {
	monitor  *observability.Monitor
	interval time.Duration
}

func NewProcessSampler(monitor *observability.Monitor, interval time.Duration) *ProcessSampler {
	return &ProcessSampler{monitor: monitor, interval: interval}
}

func (w *ProcessSampler) Run(ctx context.Context) error {
	w.monitor.Run(ctx, w.interval)
	return nil
}
