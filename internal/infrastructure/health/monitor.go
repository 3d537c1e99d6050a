package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Prober is the probe the monitor runs. The store gateway's CheckHealth
// satisfies it.
type Prober interface {
	CheckHealth(ctx context.Context) bool
}

// MonitorConfig holds health monitor configuration
type MonitorConfig struct {
	Interval     time.Duration
	ProbeTimeout time.Duration
}

// DefaultMonitorConfig returns the default probe cadence
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Interval:     10 * time.Second,
		ProbeTimeout: 5 * time.Second,
	}
}

// Monitor periodically probes backend reachability and publishes the result
// as a flag the rest of the storefront reads without blocking. The state is
// advisory: operations never consult it to decide whether to try the
// backend, they just attempt and degrade.
type Monitor struct {
	config MonitorConfig
	prober Prober
	logger *zap.Logger

	online  atomic.Bool
	checked atomic.Bool

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewMonitor creates a health monitor
func NewMonitor(config MonitorConfig, prober Prober, logger *zap.Logger) *Monitor {
	if config.Interval <= 0 {
		config.Interval = DefaultMonitorConfig().Interval
	}
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = DefaultMonitorConfig().ProbeTimeout
	}
	return &Monitor{
		config: config,
		prober: prober,
		logger: logger,
	}
}

// Start begins probing: one probe immediately, then one per interval
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		return nil
	}
	m.isRunning = true
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(ctx)

	m.logger.Info("Backend health monitor started",
		zap.Duration("interval", m.config.Interval),
	)
	return nil
}

// Stop gracefully stops the monitor
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.isRunning {
		m.mu.Unlock()
		return nil
	}
	m.isRunning = false
	m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Backend health monitor stopped")
		return nil
	case <-ctx.Done():
		m.logger.Warn("Backend health monitor stop timed out")
		return ctx.Err()
	}
}

// Online reports the last observed backend state. False until the first
// probe completes.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Checked reports whether at least one probe has completed
func (m *Monitor) Checked() bool {
	return m.checked.Load()
}

// CheckNow runs a probe immediately and returns the result
func (m *Monitor) CheckNow(ctx context.Context) bool {
	return m.probe(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()

	m.probe(ctx)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.config.ProbeTimeout)
	defer cancel()

	online := m.prober.CheckHealth(probeCtx)
	previous := m.online.Swap(online)
	first := !m.checked.Swap(true)

	if first || previous != online {
		if online {
			m.logger.Info("Backend is reachable")
		} else {
			m.logger.Warn("Backend is unreachable, operating in degraded mode")
		}
	}
	return online
}
