package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportGenerator produces a report file from a ledger file
type ReportGenerator interface {
	GenerateFeeReport(ctx context.Context, ledgerPath, reportPath string) error
}

// Scheduler regenerates the fee report on a cron schedule
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	gen        ReportGenerator
	log        *logrus.Logger
	ledgerPath string
	reportPath string
}

// New initializes a scheduler for the given 5-field cron spec
func New(spec string, gen ReportGenerator, ledgerPath, reportPath string, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.PrintfLogger(log)
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		spec:       spec,
		gen:        gen,
		log:        log,
		ledgerPath: ledgerPath,
		reportPath: reportPath,
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule report: %w", err)
	}
	return s, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.log.Infof("Report scheduler started with schedule %q", s.spec)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("Report scheduler stopped")
}

func (s *Scheduler) runOnce() {
	if err := s.gen.GenerateFeeReport(context.Background(), s.ledgerPath, s.reportPath); err != nil {
		s.log.Errorf("Scheduled fee report failed: %v", err)
	}
}
