package board

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval matches the original board's 30-second auto-refresh.
const DefaultPollInterval = 30 * time.Second

// Poller re-issues Board.Refresh on a fixed interval for the lifetime of
// its context. Errors are logged inside Refresh and otherwise ignored; the
// next tick retries naturally, so there is no backoff.
type Poller struct {
	board    *Board
	interval time.Duration
	clock    clockwork.Clock
}

// NewPoller creates a Poller for board. A non-positive interval falls back
// to DefaultPollInterval. clock may be nil, in which case the real clock is
// used; tests pass a fake clock.
func NewPoller(board *Board, interval time.Duration, clock clockwork.Clock) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{board: board, interval: interval, clock: clock}
}

// Run refreshes once immediately, then on every interval tick until ctx is
// done. It always returns nil so an errgroup running it only stops on
// context cancellation.
func (p *Poller) Run(ctx context.Context) error {
	_ = p.board.Refresh(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			_ = p.board.Refresh(ctx)
		}
	}
}
