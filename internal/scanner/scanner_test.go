package scanner_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// stubProber returns canned results and tracks concurrency.
type stubProber struct {
	results  map[string]scanner.ProbeResult
	delay    time.Duration
	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func newStubProber(results map[string]scanner.ProbeResult, delay time.Duration) *stubProber {
	return &stubProber{results: results, delay: delay, calls: make(map[string]int)}
}

func (s *stubProber) Probe(ctx context.Context, hostname string) scanner.ProbeResult {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxSeen.Load()
		if n <= seen || s.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls[hostname]++
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if r, ok := s.results[hostname]; ok {
		r.Hostname = hostname
		return r
	}
	return scanner.ProbeResult{Hostname: hostname, Status: scanner.StatusValid, Certificate: []byte(hostname)}
}

func (s *stubProber) Calls(hostname string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[hostname]
}

type recordingObserver struct {
	seen []string
}

func (o *recordingObserver) ObserveProbe(r scanner.ProbeResult) {
	o.seen = append(o.seen, r.Hostname)
}

func TestNew_DefaultConcurrency(t *testing.T) {
	s := scanner.New(newStubProber(nil, 0), 0, nil)
	assert.Equal(t, scanner.DefaultConcurrency(), s.Concurrency())
	assert.LessOrEqual(t, s.Concurrency(), 32)
	assert.GreaterOrEqual(t, s.Concurrency(), 5)

	s = scanner.New(newStubProber(nil, 0), 3, nil)
	assert.Equal(t, 3, s.Concurrency())
}

func TestProbeAll_Empty(t *testing.T) {
	s := scanner.New(newStubProber(nil, 0), 4, zaptest.NewLogger(t))
	report := s.ProbeAll(context.Background(), nil)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Len())
	for _, status := range scanner.Statuses() {
		assert.Empty(t, report.Entries(status))
	}
}

func TestProbeAll_EveryHostProbedOnceWithinLimit(t *testing.T) {
	hosts := make([]string, 40)
	for i := range hosts {
		hosts[i] = fmt.Sprintf("host-%02d.test", i)
	}
	stub := newStubProber(nil, 10*time.Millisecond)
	s := scanner.New(stub, 4, zaptest.NewLogger(t))

	report := s.ProbeAll(context.Background(), hosts)

	assert.Equal(t, len(hosts), report.Len())
	for _, h := range hosts {
		assert.Equal(t, 1, stub.Calls(h), "host %s", h)
		_, ok := report.Lookup(scanner.StatusValid, h)
		assert.True(t, ok, "host %s missing from report", h)
	}
	assert.LessOrEqual(t, int(stub.maxSeen.Load()), 4)
	assert.Greater(t, int(stub.maxSeen.Load()), 1, "probes should overlap")
}

func TestProbeAll_Classification(t *testing.T) {
	stub := newStubProber(map[string]scanner.ProbeResult{
		"bad.test":  {Status: scanner.StatusInvalid, Certificate: []byte("bad"), Reason: scanner.ReasonUntrusted},
		"down.test": {Status: scanner.StatusUnavailable, Reason: scanner.ReasonRefused},
	}, 0)
	s := scanner.New(stub, 2, zaptest.NewLogger(t))

	report := s.ProbeAll(context.Background(), []string{"good.test", "bad.test", "down.test"})

	assert.Equal(t, 1, report.Count(scanner.StatusValid))
	assert.Equal(t, 1, report.Count(scanner.StatusInvalid))
	assert.Equal(t, 1, report.Count(scanner.StatusUnavailable))

	bad, ok := report.Lookup(scanner.StatusInvalid, "bad.test")
	require.True(t, ok)
	assert.Equal(t, []byte("bad"), bad.Certificate)
	assert.Equal(t, scanner.ReasonUntrusted, bad.Reason)

	down, ok := report.Lookup(scanner.StatusUnavailable, "down.test")
	require.True(t, ok)
	assert.Nil(t, down.Certificate)
}

func TestProbeAll_DuplicatesCollapse(t *testing.T) {
	stub := newStubProber(nil, 0)
	s := scanner.New(stub, 4, zaptest.NewLogger(t))

	report := s.ProbeAll(context.Background(), []string{"dup.test", "other.test", "dup.test"})

	assert.Equal(t, 2, stub.Calls("dup.test"), "each input line is probed")
	assert.Equal(t, 2, report.Count(scanner.StatusValid))
}

func TestProbeAll_ObserverSeesEveryResult(t *testing.T) {
	obs := &recordingObserver{}
	s := scanner.New(newStubProber(nil, 0), 3, zaptest.NewLogger(t))
	s.SetObserver(obs)

	hosts := []string{"a.test", "b.test", "c.test", "d.test"}
	s.ProbeAll(context.Background(), hosts)

	assert.ElementsMatch(t, hosts, obs.seen)
}

func TestProbeAll_RealEndpoints(t *testing.T) {
	ca := newTestCA(t)
	now := time.Now()
	good := startTLSEndpoint(t, ca.issue(t, []string{"good.test"}, now.Add(-time.Hour), now.Add(time.Hour)))
	bad := startTLSEndpoint(t, selfSigned(t, "bad.test"))

	p := scanner.NewProber(
		scanner.WithRootCAs(ca.pool),
		scanner.WithDialContext(routes(map[string]string{
			"good.test:443": good.Addr(),
			"bad.test:443":  bad.Addr(),
			"down.test:443": refusedAddr(t),
		})),
	)
	s := scanner.New(p, 3, zaptest.NewLogger(t))

	report := s.ProbeAll(context.Background(), []string{"good.test", "bad.test", "down.test"})

	_, ok := report.Lookup(scanner.StatusValid, "good.test")
	assert.True(t, ok)
	_, ok = report.Lookup(scanner.StatusInvalid, "bad.test")
	assert.True(t, ok)
	down, ok := report.Lookup(scanner.StatusUnavailable, "down.test")
	assert.True(t, ok)
	assert.Equal(t, scanner.ReasonRefused, down.Reason)
}

func TestProbeAll_CanceledContextStillCoversEveryHost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := scanner.NewProber(scanner.WithDialContext(routes(nil)))
	s := scanner.New(p, 2, zaptest.NewLogger(t))

	report := s.ProbeAll(ctx, []string{"a.test", "b.test", "c.test"})
	assert.Equal(t, 3, report.Count(scanner.StatusUnavailable))
}
