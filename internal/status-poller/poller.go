package status_poller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

type networkEvent int

const (
	networkRestored networkEvent = iota + 1
	networkLost
)

type Poller interface {
	// Probe performs a single liveness request and never panics.
	Probe(ctx context.Context) ConnectionState
	// Start launches the supervised probing loop and returns immediately.
	Start(ctx context.Context)
	// Run is Start followed by waiting until the loop has stopped.
	Run(ctx context.Context) error
	// Stop cancels the loop and any in-flight probe, and waits for both to finish.
	Stop()
	NetworkRestored()
	NetworkLost()
	State() ConnectionState
}

type poller struct {
	client   HealthClient
	store    *StateStore
	renderer Renderer
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	events chan networkEvent
	done   chan struct{}

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

type probeResult struct {
	seq   uint64
	state ConnectionState
}

func (p *poller) Probe(ctx context.Context) (state ConnectionState) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("probe panicked: %v", r)
			p.logger.Error("recovered from probe panic", zap.Error(err))
			state = ConnectionState{
				Connected:     false,
				Detail:        DetailUnexpectedError,
				LastCheckedAt: p.now(),
				Err:           err,
			}
		}
	}()

	health, err := p.client.GetHealth(ctx)
	if err != nil {
		detail := err.Error()
		if detail == "" {
			detail = DetailUnexpectedError
		}
		return ConnectionState{
			Connected:     false,
			Detail:        detail,
			LastCheckedAt: p.now(),
			Err:           fmt.Errorf("Poller.Probe: %w", err),
		}
	}
	return ConnectionState{
		Connected:     true,
		Detail:        fmt.Sprintf("Uptime: %ds", int64(math.Floor(health.Uptime))),
		LastCheckedAt: p.now(),
		Health:        &health,
	}
}

func (p *poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

func (p *poller) Run(ctx context.Context) error {
	p.Start(ctx)
	<-p.done
	return nil
}

func (p *poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-p.done
}

func (p *poller) NetworkRestored() {
	p.notify(networkRestored)
}

func (p *poller) NetworkLost() {
	p.notify(networkLost)
}

func (p *poller) State() ConnectionState {
	return p.store.Get()
}

func (p *poller) notify(e networkEvent) {
	select {
	case p.events <- e:
	case <-p.done:
	default:
		p.logger.Warn("network event queue is full, dropping event", zap.Int("event", int(e)))
	}
}

// run owns all scheduling decisions. Ticks that fire while a probe is in flight are skipped,
// a restored network cancels the in-flight probe and reschedules, and a lost network cancels it
// and marks the backend unreachable. Results carry a sequence number so a cancelled probe can
// never overwrite a newer state.
func (p *poller) run(ctx context.Context) {
	var (
		wg             sync.WaitGroup
		seq            uint64
		cancelInFlight context.CancelFunc
		ticker         *time.Ticker
		tick           <-chan time.Time
	)
	results := make(chan probeResult)
	quit := make(chan struct{})

	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
		close(quit)
		if cancelInFlight != nil {
			cancelInFlight()
		}
		wg.Wait()
		close(p.done)
		p.logger.Info("status poller stopped")
	}()

	launch := func(reason string) {
		if cancelInFlight != nil {
			cancelInFlight()
		}
		seq++
		id := seq
		probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		cancelInFlight = cancel
		p.logger.Debug("starting probe", zap.String("reason", reason), zap.Uint64("seq", id))

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			state := p.Probe(probeCtx)
			select {
			case results <- probeResult{seq: id, state: state}:
			case <-quit:
			}
		}()
	}
	schedule := func() {
		if ticker == nil {
			ticker = time.NewTicker(p.interval)
			tick = ticker.C
			return
		}
		ticker.Reset(p.interval)
	}

	p.logger.Info("status poller started", zap.Duration("interval", p.interval), zap.Duration("probe_timeout", p.timeout))
	launch("initial")
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			if cancelInFlight != nil {
				p.logger.Debug("previous probe still in flight, skipping tick")
				p.metrics.skipped()
				continue
			}
			launch("tick")
		case e := <-p.events:
			switch e {
			case networkRestored:
				p.logger.Info("network connection restored")
				launch("network restored")
				if ticker != nil {
					schedule()
				}
			case networkLost:
				p.logger.Info("network connection lost")
				if cancelInFlight != nil {
					cancelInFlight()
					cancelInFlight = nil
				}
				seq++
				p.apply(ConnectionState{
					Connected:     false,
					Detail:        DetailNoNetwork,
					LastCheckedAt: p.now(),
				})
				if ticker == nil {
					schedule()
				}
			}
		case r := <-results:
			if r.seq != seq {
				p.logger.Debug("discarding result of superseded probe", zap.Uint64("seq", r.seq))
				continue
			}
			cancelInFlight = nil
			p.metrics.probed(r.state)
			p.apply(r.state)
			if ticker == nil {
				schedule()
			}
		}
	}
}

func (p *poller) apply(state ConnectionState) {
	prev := p.store.Set(state)
	p.renderer.Render(state)
	p.metrics.connected(state.Connected)

	if prev.LastCheckedAt.IsZero() || prev.Connected != state.Connected {
		fields := []zap.Field{zap.Bool("connected", state.Connected), zap.String("detail", state.Detail)}
		if state.Err != nil {
			fields = append(fields, zap.Error(state.Err))
		}
		p.logger.Info("backend connection state changed", fields...)
	}
}

func NewPoller(client HealthClient, store *StateStore, renderer Renderer, metrics *Metrics, logger *zap.Logger, interval time.Duration, timeout time.Duration) (Poller, error) {
	if interval <= 0 {
		return nil, errors.New("NewPoller: interval must be > 0")
	}
	if timeout <= 0 {
		return nil, errors.New("NewPoller: probe timeout must be > 0")
	}
	return &poller{
		client:   client,
		store:    store,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		events:   make(chan networkEvent, 16),
		done:     make(chan struct{}),
	}, nil
}
