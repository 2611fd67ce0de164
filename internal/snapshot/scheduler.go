package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"scad/internal/platform"
	"scad/internal/providers"
	"scad/internal/services"
	"scad/internal/snapshot/interfaces"
	"scad/internal/structures"
)

const jobTimeout = 60 * time.Second

// Scheduler drives the periodic background work: roster role reconciliation
// and snapshot export. Sync runs once at startup too, so stored role labels
// are corrected before the first query lands.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	roster   platform.RosterProviderInterface
	syncer   services.RosterServiceInterface
	exporter *Exporter
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Snapshot.Interval), func() {
		if err := s.Export(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Snapshot export failed: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Exported snapshot to %s", s.config.Snapshot.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Sync.Interval), func() {
		if err := s.Sync(); err != nil {
			s.logger.Errorf(providers.TypeSync, "Roster sync failed: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sync fetches the live roster and reconciles stored role labels. A missing
// roster endpoint is not an error; the reconciler then only runs when an
// operator posts a roster explicitly.
func (s *Scheduler) Sync() error {
	if !s.roster.Configured() {
		s.logger.Warnf(providers.TypeSync, "No roster endpoint configured, skipping role sync")
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	members, err := s.roster.FetchMembers(ctx)
	if err != nil {
		return err
	}
	s.syncer.SyncMemberRoles(ctx, members)
	return nil
}

func (s *Scheduler) Export() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	return s.exporter.Export(ctx, s.config.Snapshot.FilePath)
}

func NewScheduler(config *structures.Config, logger providers.Logger, roster platform.RosterProviderInterface, syncer services.RosterServiceInterface, exporter *Exporter) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		roster:   roster,
		syncer:   syncer,
		exporter: exporter,
	}
}
