package services

import (
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"pitwall/internal/models"
)

const mb = 1024 * 1024

// SystemProbe reads host and process stats for /api/system. Results
// are cached for a short TTL so a polling UI cannot hammer gopsutil,
// and probe failures degrade to zeroed fields instead of errors.
type SystemProbe struct {
	mu       sync.RWMutex
	cached   *models.SystemStatus
	cachedAt time.Time
	ttl      time.Duration
	pid      int32
}

// NewSystemProbe creates a probe caching results for ttl.
func NewSystemProbe(ttl time.Duration) *SystemProbe {
	if ttl <= 0 {
		ttl = time.Second
	}
	return &SystemProbe{
		ttl: ttl,
		pid: int32(os.Getpid()),
	}
}

// Status returns cached host stats if still fresh, otherwise probes anew.
func (p *SystemProbe) Status() models.SystemStatus {
	p.mu.RLock()
	if p.cached != nil && time.Since(p.cachedAt) < p.ttl {
		defer p.mu.RUnlock()
		return *p.cached
	}
	p.mu.RUnlock()

	// Probe outside the lock; gopsutil calls can be slow.
	status := p.probe()

	p.mu.Lock()
	p.cached = &status
	p.cachedAt = time.Now()
	p.mu.Unlock()

	return status
}

func (p *SystemProbe) probe() models.SystemStatus {
	status := models.SystemStatus{
		Goroutines:  runtime.NumGoroutine(),
		CollectedAt: time.Now().UTC(),
	}

	if percentage, err := cpu.Percent(0, false); err == nil && len(percentage) > 0 {
		status.CPUPercent = percentage[0]
	} else if err != nil {
		log.Printf("[system] warning: could not get CPU usage: %v", err)
	}

	if coreCount, err := cpu.Counts(true); err == nil {
		status.CoreCount = coreCount
	} else {
		log.Printf("[system] warning: could not get CPU core count: %v", err)
	}

	if virtualMemory, err := mem.VirtualMemory(); err == nil {
		status.MemoryTotalMB = float64(virtualMemory.Total) / mb
		status.MemoryUsedMB = float64(virtualMemory.Used) / mb
		status.MemoryPercent = virtualMemory.UsedPercent
	} else {
		log.Printf("[system] warning: could not get memory usage: %v", err)
	}

	if proc, err := process.NewProcess(p.pid); err == nil {
		if procCPU, err := proc.CPUPercent(); err == nil {
			status.ProcessCPUPercent = procCPU
		}
		if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
			status.ProcessRSSMB = float64(memInfo.RSS) / mb
		}
	} else {
		log.Printf("[system] warning: could not inspect own process: %v", err)
	}

	return status
}
