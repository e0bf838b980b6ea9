package service

import (
	"context"
	"fmt"
	"io"

	"github.com/Dan9191/library-fees/internal/config"
	"github.com/Dan9191/library-fees/internal/models"
	"github.com/Dan9191/library-fees/internal/report"
	"github.com/Dan9191/library-fees/internal/repository"
	"github.com/Dan9191/library-fees/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service handles fee calculation
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// LateDays returns the whole days by which the record was returned after its
// due date. Early and on-time returns give zero or a negative number.
func LateDays(rec models.CheckoutRecord) (int, error) {
	due, err := utils.LedgerDate.Parse(rec.DateDue)
	if err != nil {
		return 0, fmt.Errorf("date_due of patron %q: %w", rec.PatronID, err)
	}
	returned, err := utils.LedgerDate.Parse(rec.DateReturned)
	if err != nil {
		return 0, fmt.Errorf("date_returned of patron %q: %w", rec.PatronID, err)
	}
	return utils.DaysBetween(due, returned), nil
}

// LateFee returns rate per late day, or zero when not late
func LateFee(daysLate int, rate decimal.Decimal) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(daysLate)))
}

// ComputeFees accumulates late fees per patron. The first malformed date
// aborts the whole computation.
func (s *Service) ComputeFees(records []models.CheckoutRecord) (*models.FeeTotals, error) {
	totals := models.NewFeeTotals()
	for _, rec := range records {
		days, err := LateDays(rec)
		if err != nil {
			return nil, err
		}
		totals.Add(rec.PatronID, LateFee(days, s.config.FeeRate))
	}
	return totals, nil
}

// GenerateFeeReport reads the ledger at ledgerPath and writes the per-patron
// summary to reportPath. Nothing is written unless every record is valid.
func (s *Service) GenerateFeeReport(ctx context.Context, ledgerPath, reportPath string) error {
	log := s.runLogger(ctx).WithFields(logrus.Fields{"ledger": ledgerPath, "report": reportPath})
	log.Info("Generating fee report")

	enc, err := report.ForPath(s.config.ReportFormat, reportPath)
	if err != nil {
		return err
	}

	records, err := s.repo.ReadLedger(ledgerPath)
	if err != nil {
		log.Errorf("Failed to read ledger: %v", err)
		return err
	}

	totals, err := s.ComputeFees(records)
	if err != nil {
		log.Errorf("Failed to compute fees: %v", err)
		return err
	}

	err = s.repo.WriteFile(reportPath, func(w io.Writer) error {
		return enc.Encode(w, totals.List())
	})
	if err != nil {
		log.Errorf("Failed to write report: %v", err)
		return err
	}

	log.WithFields(logrus.Fields{
		"records": len(records),
		"patrons": totals.Len(),
		"format":  enc.Name(),
	}).Info("Fee report written")
	return nil
}

// EncodeFeeReport computes the report for the ledger read from src and
// writes it to dst using the named format.
func (s *Service) EncodeFeeReport(ctx context.Context, src io.Reader, dst io.Writer, format string) error {
	if format == "" {
		format = report.DefaultFormat
	}
	enc, err := report.Lookup(format)
	if err != nil {
		return err
	}

	records, err := s.repo.DecodeLedger(src)
	if err != nil {
		return err
	}
	totals, err := s.ComputeFees(records)
	if err != nil {
		return err
	}

	s.runLogger(ctx).WithFields(logrus.Fields{
		"records": len(records),
		"patrons": totals.Len(),
		"format":  enc.Name(),
	}).Info("Fee report encoded")
	return enc.Encode(dst, totals.List())
}

func (s *Service) runLogger(ctx context.Context) *logrus.Entry {
	return s.log.WithContext(ctx).WithField("run_id", uuid.NewString())
}
