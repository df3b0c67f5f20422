package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/internal/infrastructure/statestore"
)

// Janitor sweeps expired OAuth handshake states on a cron schedule so
// abandoned sign-in attempts do not pile up in the state store.
type Janitor struct {
	states *statestore.Store
	cron   *cron.Cron
	spec   string
	logger *zap.Logger
}

func NewJanitor(states *statestore.Store, spec string, logger *zap.Logger) *Janitor {
	if spec == "" {
		spec = "@every 5m"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		states: states,
		cron:   cron.New(),
		spec:   spec,
		logger: logger,
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (j *Janitor) sweep() {
	removed, err := j.states.Cleanup(time.Now())
	if err != nil {
		j.logger.Warn("state sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired handshake states removed", zap.Int("count", removed))
	}
}
