package status_poller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingRenderer struct {
	mu     sync.Mutex
	states []ConnectionState
}

func (r *recordingRenderer) Render(state ConnectionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *recordingRenderer) all() []ConnectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ConnectionState(nil), r.states...)
}

var healthy = HealthStatus{Status: "success", Environment: "test", Uptime: 42.9}

func newTestPoller(t *testing.T, client HealthClient, interval, timeout time.Duration) (*poller, *recordingRenderer) {
	renderer := &recordingRenderer{}
	p, err := NewPoller(client, NewStateStore(), renderer, nil, zap.NewNop(), interval, timeout)
	require.NoError(t, err)
	return p.(*poller), renderer
}

func TestNewPoller_Validation(t *testing.T) {
	_, err := NewPoller(nil, NewStateStore(), &recordingRenderer{}, nil, zap.NewNop(), 0, time.Second)
	assert.Error(t, err)
	_, err = NewPoller(nil, NewStateStore(), &recordingRenderer{}, nil, zap.NewNop(), time.Second, 0)
	assert.Error(t, err)
}

func TestPoller_Probe(t *testing.T) {
	testCases := []struct {
		name              string
		setupMocks        func(mockClient *MockHealthClient)
		expectedConnected bool
		expectedDetail    string
	}{
		{
			name: "Success reports floored uptime",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(healthy, nil)
			},
			expectedConnected: true,
			expectedDetail:    "Uptime: 42s",
		},
		{
			name: "Success with zero uptime",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{Status: "success"}, nil)
			},
			expectedConnected: true,
			expectedDetail:    "Uptime: 0s",
		},
		{
			name: "Network error",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: errors.New("connection refused")})
			},
			expectedDetail: "network error: connection refused",
		},
		{
			name: "HTTP 500",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{}, &ProbeError{Kind: ProbeErrorHTTP, StatusCode: 500})
			},
			expectedDetail: "HTTP 500: Internal Server Error",
		},
		{
			name: "Malformed JSON",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{}, &ProbeError{Kind: ProbeErrorMalformed, Err: errors.New("invalid character '<'")})
			},
			expectedDetail: "malformed response: invalid character '<'",
		},
		{
			name: "Error without text still has a detail",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{}, errors.New(""))
			},
			expectedDetail: DetailUnexpectedError,
		},
		{
			name: "Panic is folded into a disconnected state",
			setupMocks: func(mockClient *MockHealthClient) {
				mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(context.Context) (HealthStatus, error) {
					panic("client exploded")
				})
			},
			expectedDetail: DetailUnexpectedError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := NewMockHealthClient(ctrl)
			tc.setupMocks(mockClient)
			p, _ := newTestPoller(t, mockClient, time.Hour, time.Second)

			before := time.Now()
			state := p.Probe(context.Background())

			assert.Equal(t, tc.expectedConnected, state.Connected)
			assert.Equal(t, tc.expectedDetail, state.Detail)
			assert.False(t, state.LastCheckedAt.Before(before))
			if tc.expectedConnected {
				require.NotNil(t, state.Health)
				assert.NoError(t, state.Err)
			} else {
				assert.Nil(t, state.Health)
				assert.Error(t, state.Err)
			}
		})
	}
}

func TestPoller_InitialProbeThenPeriodic(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	var calls atomic.Int32
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(context.Context) (HealthStatus, error) {
		calls.Add(1)
		return healthy, nil
	}).MinTimes(3)

	p, renderer := newTestPoller(t, mockClient, 20*time.Millisecond, 10*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, p.State().Connected)
	assert.Equal(t, "Uptime: 42s", p.State().Detail)
	assert.NotEmpty(t, renderer.all())
}

func TestPoller_FirstTickWaitsForInitialProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	release := make(chan struct{})
	var calls atomic.Int32
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(ctx context.Context) (HealthStatus, error) {
		if calls.Add(1) == 1 {
			<-release
		}
		return healthy, nil
	}).AnyTimes()

	p, _ := newTestPoller(t, mockClient, 10*time.Millisecond, time.Second)
	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "no tick may fire before the first probe settles")

	close(release)
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestPoller_SkipsTicksWhileProbeInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	release := make(chan struct{})
	var calls atomic.Int32
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(ctx context.Context) (HealthStatus, error) {
		if calls.Add(1) == 2 {
			select {
			case <-release:
			case <-ctx.Done():
				return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: ctx.Err()}
			}
		}
		return healthy, nil
	}).AnyTimes()

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	require.NoError(t, err)
	renderer := &recordingRenderer{}
	pi, err := NewPoller(mockClient, NewStateStore(), renderer, metrics, zap.NewNop(), 10*time.Millisecond, 5*time.Second)
	require.NoError(t, err)
	p := pi.(*poller)
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load(), "ticks during a slow probe must be skipped")
	assert.Greater(t, testutil.ToFloat64(metrics.skippedTicks), 0.0)

	close(release)
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.probes.WithLabelValues("success")), 2.0)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.connectedG))
}

func TestPoller_NetworkLost(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	cancelled := make(chan struct{})
	var calls atomic.Int32
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(ctx context.Context) (HealthStatus, error) {
		if calls.Add(1) == 1 {
			return healthy, nil
		}
		<-ctx.Done()
		close(cancelled)
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: ctx.Err()}
	}).Times(2)

	p, renderer := newTestPoller(t, mockClient, time.Hour, time.Hour)
	p.Start(context.Background())
	defer p.Stop()
	require.Eventually(t, func() bool { return p.State().Connected }, 2*time.Second, time.Millisecond)

	p.NetworkRestored()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, time.Millisecond)

	p.NetworkLost()
	assert.Eventually(t, func() bool {
		s := p.State()
		return !s.Connected && s.Detail == DetailNoNetwork
	}, time.Second, time.Millisecond)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight probe was not cancelled")
	}
	assert.Never(t, func() bool { return p.State().Detail != DetailNoNetwork }, 100*time.Millisecond, 5*time.Millisecond,
		"the cancelled probe must not overwrite the network-lost state")

	for _, s := range renderer.all() {
		if s.Err != nil {
			assert.False(t, strings.Contains(s.Err.Error(), "context canceled"), "superseded probe result was rendered")
		}
	}
}

func TestPoller_NetworkRestoredProbesImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	gomock.InOrder(
		mockClient.EXPECT().GetHealth(gomock.Any()).Return(HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: errors.New("network is unreachable")}),
		mockClient.EXPECT().GetHealth(gomock.Any()).Return(healthy, nil),
	)

	p, _ := newTestPoller(t, mockClient, time.Hour, time.Second)
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return !p.State().LastCheckedAt.IsZero() }, 2*time.Second, time.Millisecond)
	assert.False(t, p.State().Connected)
	assert.Contains(t, p.State().Detail, "network is unreachable")

	p.NetworkRestored()
	assert.Eventually(t, func() bool { return p.State().Connected }, time.Second, time.Millisecond)
}

func TestPoller_RestoredSupersedesInFlightProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	var calls atomic.Int32
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(ctx context.Context) (HealthStatus, error) {
		switch calls.Add(1) {
		case 2:
			<-ctx.Done()
			return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: ctx.Err()}
		default:
			return healthy, nil
		}
	}).Times(3)

	p, renderer := newTestPoller(t, mockClient, time.Hour, time.Hour)
	p.Start(context.Background())
	defer p.Stop()
	require.Eventually(t, func() bool { return len(renderer.all()) == 1 }, 2*time.Second, time.Millisecond)

	p.NetworkRestored()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, time.Millisecond)
	p.NetworkRestored()

	require.Eventually(t, func() bool { return len(renderer.all()) == 2 }, 2*time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	states := renderer.all()
	require.Len(t, states, 2)
	for _, s := range states {
		assert.True(t, s.Connected)
	}
}

func TestPoller_ProbeTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := NewMockHealthClient(ctrl)
	mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(ctx context.Context) (HealthStatus, error) {
		<-ctx.Done()
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: ctx.Err()}
	}).MinTimes(1)

	p, _ := newTestPoller(t, mockClient, time.Hour, 30*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return !p.State().LastCheckedAt.IsZero() }, 2*time.Second, 5*time.Millisecond)
	state := p.State()
	assert.False(t, state.Connected)
	assert.Contains(t, state.Detail, context.DeadlineExceeded.Error())
}

func TestPoller_StopAndRun(t *testing.T) {
	t.Run("Stop before start returns", func(t *testing.T) {
		p, _ := newTestPoller(t, nil, time.Hour, time.Second)
		p.Stop()
	})

	t.Run("Stop halts probing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := NewMockHealthClient(ctrl)
		var calls atomic.Int32
		mockClient.EXPECT().GetHealth(gomock.Any()).DoAndReturn(func(context.Context) (HealthStatus, error) {
			calls.Add(1)
			return healthy, nil
		}).AnyTimes()

		p, _ := newTestPoller(t, mockClient, 5*time.Millisecond, time.Second)
		p.Start(context.Background())
		require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, time.Millisecond)

		p.Stop()
		p.Stop()
		after := calls.Load()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, after, calls.Load())
		p.NetworkRestored()
		p.NetworkLost()
	})

	t.Run("Run returns when the context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := NewMockHealthClient(ctrl)
		mockClient.EXPECT().GetHealth(gomock.Any()).Return(healthy, nil).AnyTimes()

		p, _ := newTestPoller(t, mockClient, time.Hour, time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- p.Run(ctx) }()

		require.Eventually(t, func() bool { return p.State().Connected }, 2*time.Second, time.Millisecond)
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancellation")
		}
	})
}
