package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_FailureThresholdAndRecovery(t *testing.T) {
	var fail atomic.Bool
	c := newCheck("dep", time.Second, func(context.Context) error {
		if fail.Load() {
			return errors.New("down")
		}
		return nil
	})

	ctx := context.Background()
	require.True(t, c.healthy.Load(), "checks start healthy")

	fail.Store(true)
	c.run(ctx)
	c.run(ctx)
	assert.True(t, c.healthy.Load(), "two failures stay under the threshold")

	c.run(ctx)
	assert.False(t, c.healthy.Load(), "third consecutive failure flips unhealthy")

	fail.Store(false)
	c.run(ctx)
	assert.True(t, c.healthy.Load(), "one success recovers")
}

func TestIsReady(t *testing.T) {
	h := New()
	assert.False(t, h.IsReady(), "not ready before SetReady")

	h.SetReady(true)
	assert.True(t, h.IsReady())

	h.AddReadinessCheck("dep", time.Second, func(context.Context) error {
		return errors.New("down")
	})
	assert.True(t, h.IsReady(), "unexecuted checks start healthy")

	h.mu.RLock()
	c := h.readiness[0]
	h.mu.RUnlock()
	for range failureThreshold {
		c.run(context.Background())
	}
	assert.False(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady())
}

func TestReadyEndpoint(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Contains(t, body.Checks, "_readiness")

	h.SetReady(true)
	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLiveEndpoint_ReportsFailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("stuck", time.Second, func(context.Context) error {
		return errors.New("wedged")
	})

	h.mu.RLock()
	c := h.liveness[0]
	h.mu.RUnlock()
	for range failureThreshold {
		c.run(context.Background())
	}

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "wedged", body.Checks["stuck"])
}

func TestStartStop(t *testing.T) {
	var calls atomic.Int32
	h := New()
	h.AddReadinessCheck("dep", time.Second, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	h.Start(context.Background(), 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond, "checks run immediately and then on the interval")

	h.Stop()
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), settled+1, "no new runs after Stop")

	h.Stop() // idempotent
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestPingCheck(t *testing.T) {
	assert.NoError(t, PingCheck(fakePinger{})(context.Background()))

	err := PingCheck(fakePinger{err: errors.New("refused")})(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}
