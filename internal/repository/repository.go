package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Dan9191/library-fees/internal/models"
)

// ErrMalformedLedger is wrapped by every RecordError
var ErrMalformedLedger = errors.New("malformed ledger")

// RecordError reports a structural problem at a ledger line
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("ledger line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Repository provides flat-file ledger and report storage
type Repository struct {
	sentinelRows int
}

// NewRepository initializes a new repository. sentinelRows is the number of
// rows discarded after the header line of every ledger.
func NewRepository(sentinelRows int) *Repository {
	return &Repository{sentinelRows: sentinelRows}
}

// ReadLedger reads all checkout records from the ledger at path
func (r *Repository) ReadLedger(path string) ([]models.CheckoutRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	return r.DecodeLedger(f)
}

// DecodeLedger reads all checkout records from src. The first line is the
// header and is not interpreted; the columns always follow models.LedgerHeader.
func (r *Repository) DecodeLedger(src io.Reader) ([]models.CheckoutRecord, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &RecordError{Line: 1, Err: fmt.Errorf("%w: missing header line", ErrMalformedLedger)}
		}
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}

	var records []models.CheckoutRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RecordError{Line: parseErr.Line, Err: fmt.Errorf("%w: %v", ErrMalformedLedger, parseErr.Err)}
			}
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		if skipped < r.sentinelRows {
			skipped++
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(row) < len(models.LedgerHeader) {
			return nil, &RecordError{
				Line: line,
				Err:  fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLedger, len(models.LedgerHeader), len(row)),
			}
		}

		records = append(records, models.CheckoutRecord{
			BookUID:      row[0],
			ISBN13:       row[1],
			PatronID:     row[2],
			DateCheckout: row[3],
			DateDue:      row[4],
			DateReturned: row[5],
		})
	}
	return records, nil
}

// WriteFile replaces the file at path with the output of write. Data goes to
// a temporary file in the same directory first, so path is only touched when
// write succeeds.
func (r *Repository) WriteFile(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
