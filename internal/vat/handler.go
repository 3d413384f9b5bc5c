package vat

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fiskal-sk/fiskal/internal/invoices"
	"github.com/fiskal-sk/fiskal/internal/platform/httpx"
)

// InvoiceReader loads invoices for a company and period.
type InvoiceReader interface {
	ListInRange(ctx context.Context, companyID int64, from, to time.Time) ([]invoices.Invoice, error)
}

// Handler serves VAT reports over HTTP.
type Handler struct {
	logger   *slog.Logger
	reader   InvoiceReader
	validate *validator.Validate
}

// NewHandler constructs the VAT HTTP handler.
func NewHandler(logger *slog.Logger, reader InvoiceReader) *Handler {
	return &Handler{logger: logger, reader: reader, validate: validator.New()}
}

// MountRoutes registers VAT report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/vat/return", h.Return)
	r.Get("/vat/control-report", h.ControlReport)
}

type periodRequest struct {
	CompanyID int64  `validate:"required,gt=0"`
	From      string `validate:"required,datetime=2006-01-02"`
	To        string `validate:"required,datetime=2006-01-02"`
}

// Return handles GET /vat/return.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	companyID, from, to, err := h.parsePeriod(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	list, err := h.reader.ListInRange(r.Context(), companyID, from, to)
	if err != nil {
		h.logger.Error("load invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, CalculateReturn(list, from, to))
}

// ControlReport handles GET /vat/control-report.
func (h *Handler) ControlReport(w http.ResponseWriter, r *http.Request) {
	companyID, from, to, err := h.parsePeriod(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	list, err := h.reader.ListInRange(r.Context(), companyID, from, to)
	if err != nil {
		h.logger.Error("load invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, CalculateControlReport(list, from, to))
}

func (h *Handler) parsePeriod(r *http.Request) (int64, time.Time, time.Time, error) {
	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	req := periodRequest{CompanyID: companyID, From: q.Get("from"), To: q.Get("to")}
	if err := h.validate.Struct(req); err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)
	return req.CompanyID, from, to, nil
}
