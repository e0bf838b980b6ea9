package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/library-fees/internal/report"
	"github.com/Dan9191/library-fees/internal/repository"
	"github.com/Dan9191/library-fees/internal/service"
	"github.com/Dan9191/library-fees/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	// maxLedgerBytes caps uploaded ledgers
	maxLedgerBytes = 32 << 20
	// maxJSONBytes caps the date utility request bodies
	maxJSONBytes = 1 << 20
)

// Handler serves the fee report and date utility endpoints
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type datesPayload struct {
	Dates []string `json:"dates"`
}

type pairsRequest struct {
	Start  string            `json:"start"`
	Values []json.RawMessage `json:"values"`
}

type pairPayload struct {
	Date  string          `json:"date"`
	Value json.RawMessage `json:"value"`
}

type pairsResponse struct {
	Pairs []pairPayload `json:"pairs"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// FeeReport computes a fee report from the ledger in the request body
func (h *Handler) FeeReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = report.DefaultFormat
	}
	enc, err := report.Lookup(format)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	body := http.MaxBytesReader(w, r.Body, maxLedgerBytes)
	if err := h.svc.EncodeFeeReport(r.Context(), body, &buf, enc.Name()); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="book_fees`+enc.Extension()+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ReformatDates renders YYYY-MM-DD dates as "DD Mon YYYY"
func (h *Handler) ReformatDates(w http.ResponseWriter, r *http.Request) {
	var req datesPayload
	if !h.decodeJSON(w, r, &req) {
		return
	}

	out, err := utils.ReformatDates(req.Dates)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, datesPayload{Dates: out})
}

// DateRange lists n consecutive days from start
func (h *Handler) DateRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		h.writeError(w, &utils.ContractError{Arg: "n", Reason: "must be an integer"})
		return
	}

	dates, err := utils.DateRange(q.Get("start"), n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, datesPayload{Dates: formatDays(dates)})
}

// DatePairs pairs each submitted value with a consecutive day from start
func (h *Handler) DatePairs(w http.ResponseWriter, r *http.Request) {
	var req pairsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	pairs, err := utils.AddDateRange(req.Values, req.Start)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := pairsResponse{Pairs: make([]pairPayload, len(pairs))}
	for i, p := range pairs {
		resp.Pairs[i] = pairPayload{Date: p.Date.Format(time.DateOnly), Value: p.Value}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// decodeJSON reads a size-capped JSON body into v and writes the error
// response itself when that fails.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			h.writeError(w, err)
			return false
		}
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func formatDays(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, utils.ErrInvalidDate),
		errors.Is(err, utils.ErrContract),
		errors.Is(err, repository.ErrMalformedLedger),
		errors.Is(err, report.ErrUnknownFormat):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &maxBytes):
		h.writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
