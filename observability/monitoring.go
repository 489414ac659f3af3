package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RecentRejection is one entry of the rolling rejection list shown by /api/stats.
type RecentRejection struct {
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats aggregates every counter exposed to operators.
type MonitoringStats struct {
	// --- CHAT GATE ---
	ChatRequests    uint64            `json:"chat_requests"`
	ChatAccepted    uint64            `json:"chat_accepted"`
	ChatOffTopic    uint64            `json:"chat_off_topic"`
	ChatRejected    map[string]uint64 `json:"chat_rejected"`
	UpstreamTokens  uint64            `json:"upstream_tokens"`
	UpstreamCalls   uint64            `json:"upstream_calls"`
	UpstreamLatency string            `json:"upstream_avg_latency"`

	// --- SYSTEM METRICS ---
	AllocMemMb       uint64            `json:"alloc_mem_mb"`
	NumGC            uint32            `json:"num_gc"`
	Goroutines       int               `json:"goroutines"`
	ProcessRSSMb     uint64            `json:"process_rss_mb"`
	ProcessCPU       float64           `json:"process_cpu_percent"`
	Uptime           string            `json:"uptime"`
	RecentRejections []RecentRejection `json:"recent_rejections"`
}

const recentRejectionsKept = 20

// Monitor counts chat gate outcomes. Counters are atomics, the per-code map
// and the recent list are behind mu.
type Monitor struct {
	log     *slog.Logger
	started time.Time

	requests       uint64
	accepted       uint64
	offTopic       uint64
	upstreamCalls  uint64
	upstreamTokens uint64
	upstreamNanos  uint64

	mu       sync.RWMutex
	rejected map[string]uint64
	recent   []RecentRejection
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{
		log:      log,
		started:  time.Now(),
		rejected: make(map[string]uint64),
		recent:   make([]RecentRejection, 0),
	}
}

func (m *Monitor) IncrRequests() {
	atomic.AddUint64(&m.requests, 1)
}

func (m *Monitor) IncrAccepted(offTopic bool) {
	atomic.AddUint64(&m.accepted, 1)
	if offTopic {
		atomic.AddUint64(&m.offTopic, 1)
	}
}

// ObserveUpstream records one completion call, successful or not.
func (m *Monitor) ObserveUpstream(latency time.Duration, tokens int) {
	atomic.AddUint64(&m.upstreamCalls, 1)
	atomic.AddUint64(&m.upstreamNanos, uint64(latency.Nanoseconds()))
	if tokens > 0 {
		atomic.AddUint64(&m.upstreamTokens, uint64(tokens))
	}
}

// AddRejection counts a rejection by code and keeps it in the recent list (thread-safe).
func (m *Monitor) AddRejection(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rejected[code]++
	m.recent = append([]RecentRejection{{Code: code, Timestamp: time.Now().Format("15:04:05")}}, m.recent...)
	if len(m.recent) > recentRejectionsKept {
		m.recent = m.recent[:recentRejectionsKept]
	}
}

func (m *Monitor) GetLatest() MonitoringStats {
	stats := MonitoringStats{
		ChatRequests:   atomic.LoadUint64(&m.requests),
		ChatAccepted:   atomic.LoadUint64(&m.accepted),
		ChatOffTopic:   atomic.LoadUint64(&m.offTopic),
		UpstreamCalls:  atomic.LoadUint64(&m.upstreamCalls),
		UpstreamTokens: atomic.LoadUint64(&m.upstreamTokens),
		Goroutines:     runtime.NumGoroutine(),
		Uptime:         time.Since(m.started).Truncate(time.Second).String(),
	}
	if stats.UpstreamCalls > 0 {
		avg := time.Duration(atomic.LoadUint64(&m.upstreamNanos) / stats.UpstreamCalls)
		stats.UpstreamLatency = avg.Truncate(time.Millisecond).String()
	}

	m.mu.RLock()
	stats.ChatRejected = make(map[string]uint64, len(m.rejected))
	for code, n := range m.rejected {
		stats.ChatRejected[code] = n
	}
	stats.RecentRejections = append([]RecentRejection(nil), m.recent...)
	m.mu.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.AllocMemMb = mem.Alloc / 1024 / 1024
	stats.NumGC = mem.NumGC

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.log.Debug("Error while retrieving process", "err", err)
		return stats
	}
	if info, err := p.MemoryInfo(); err == nil {
		stats.ProcessRSSMb = info.RSS / 1024 / 1024
	} else {
		m.log.Debug("Error while finding process ram usage", "err", err)
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.ProcessCPU = cpu
	} else {
		m.log.Debug("Error while finding process cpu usage", "err", err)
	}
	return stats
}
