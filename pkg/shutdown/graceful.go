package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/devsalaries/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives, then stops s within timeout
func Graceful(signals []os.Signal, s Stoppable, timeout time.Duration, log *logging.Logger) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}

// Context returns a child of parent canceled on the first of signals or after timeout.
// A zero timeout means no deadline.
func Context(parent context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, signals...)

	cancel := stop
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		cancel = func() {
			cancelTimeout()
			stop()
		}
	}

	go func() {
		<-ctx.Done()
		switch ctx.Err() {
		case context.DeadlineExceeded:
			log.Warn("run timeout reached, canceling in-flight requests", "timeout", timeout)
		case context.Canceled:
			if parent.Err() == nil {
				log.Debug("run context canceled")
			}
		}
	}()

	return ctx, cancel
}
