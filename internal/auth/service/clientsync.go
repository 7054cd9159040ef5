package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

// DefinitionSource returns the current set of externally defined clients.
type DefinitionSource func() ([]domain.ClientDefinition, error)

// ClientSyncService keeps the store in step with a client definition source.
// It syncs once on start, then on every tick and on every change signal.
type ClientSyncService struct {
	Clients  *ClientService
	Source   DefinitionSource
	Changes  <-chan struct{}
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewClientSyncService creates a sync service. If interval is 0 or negative,
// defaults to 5 minutes. changes may be nil.
func NewClientSyncService(
	clients *ClientService,
	source DefinitionSource,
	changes <-chan struct{},
	logger *slog.Logger,
	interval time.Duration,
) *ClientSyncService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &ClientSyncService{
		Clients:  clients,
		Source:   source,
		Changes:  changes,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the background worker. Call Stop to shut it down.
func (s *ClientSyncService) Start() {
	go s.run()
	s.Logger.Info("client sync service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sync has finished.
func (s *ClientSyncService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("client sync service stopped")
}

// Sync loads the definitions and applies them once.
func (s *ClientSyncService) Sync(ctx context.Context) (SyncResult, error) {
	defs, err := s.Source()
	if err != nil {
		return SyncResult{}, err
	}
	return s.Clients.ApplyDefinitions(ctx, defs)
}

func (s *ClientSyncService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sync("startup")

	for {
		select {
		case <-ticker.C:
			s.sync("interval")
		case <-s.Changes:
			s.sync("file_changed")
		case <-s.stopCh:
			return
		}
	}
}

// sync failures are logged and retried on the next trigger.
func (s *ClientSyncService) sync(trigger string) {
	res, err := s.Sync(context.Background())
	if err != nil {
		s.Logger.Error("client sync failed", "trigger", trigger, "error", err)
		return
	}
	s.Logger.Info("client sync completed",
		"trigger", trigger,
		"created", res.Created,
		"updated", res.Updated,
		"unchanged", res.Unchanged,
	)
}
