package dashboard

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// SnapshotSource runs one simulation cycle on the backend.
type SnapshotSource interface {
	Simulate(ctx context.Context) (*grid.Snapshot, error)
}

// Fetcher requests snapshots and funnels every failure into one error value.
// It does not track busy state; the caller owns the trigger.
type Fetcher struct {
	source SnapshotSource
	log    logger.Logger
}

// NewFetcher creates a fetcher over source.
func NewFetcher(source SnapshotSource, log logger.Logger) *Fetcher {
	return &Fetcher{source: source, log: logger.OrDefault(log)}
}

// Fetch returns the parsed snapshot, or a structured error: ErrHTTP for
// non-success statuses and timeouts, ErrParse for malformed bodies,
// ErrConnectivity when the backend is unreachable, ErrUnknown otherwise.
func (f *Fetcher) Fetch(ctx context.Context) (snap *grid.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap = nil
			err = errors.New(errors.ErrUnknown, fmt.Sprintf("Snapshot request failed: %v", r), "")
		}
	}()

	snap, err = f.source.Simulate(ctx)
	if err != nil {
		var gwErr *errors.Error
		if !stderrors.As(err, &gwErr) {
			err = errors.WrapWithCode(err, errors.ErrUnknown, err.Error(), "")
		}
		f.log.Debug("simulate failed: %s", errors.Human(err))
		return nil, err
	}
	if snap == nil {
		return nil, errors.NewParseError(stderrors.New("empty snapshot"))
	}
	return snap, nil
}
