package metrics

import (
	"sync/atomic"
	"time"
)

// Collector is a process-local request counter. There is no exporter; the
// snapshot is served from an admin endpoint.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rejectedForms   uint64
	exportsBuilt    uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 400 {
		atomic.AddUint64(&c.rejectedForms, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordExport counts one generated export file, whatever the format.
func (c *Collector) RecordExport() {
	atomic.AddUint64(&c.exportsBuilt, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	rejected := atomic.LoadUint64(&c.rejectedForms)
	exports := atomic.LoadUint64(&c.exportsBuilt)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"rejectedFormsTotal": rejected,
		"exportsTotal":       exports,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
	}
}
