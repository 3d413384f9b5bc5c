package statements

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fiskal-sk/fiskal/internal/ledger"
	"github.com/fiskal-sk/fiskal/internal/platform/httpx"
)

// StatementService is the calculation contract used by the handler.
type StatementService interface {
	BalanceSheet(ctx context.Context, companyID, fiscalYearID int64, dateTo *time.Time) (BalanceSheetData, error)
	ProfitLoss(ctx context.Context, companyID, fiscalYearID int64, dateFrom, dateTo *time.Time) (ProfitLossData, error)
}

// Handler serves statement reports over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  StatementService
	validate *validator.Validate
}

// NewHandler constructs the statements HTTP handler.
func NewHandler(logger *slog.Logger, service StatementService) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers statement endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/statements/balance-sheet", h.BalanceSheet)
	r.Get("/statements/profit-loss", h.ProfitLoss)
}

type statementRequest struct {
	CompanyID    int64  `validate:"required,gt=0"`
	FiscalYearID int64  `validate:"required,gt=0"`
	DateFrom     string `validate:"omitempty,datetime=2006-01-02"`
	DateTo       string `validate:"omitempty,datetime=2006-01-02"`
}

// BalanceSheet handles GET /statements/balance-sheet.
func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	data, err := h.service.BalanceSheet(r.Context(), req.CompanyID, req.FiscalYearID, parseDate(req.DateTo))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

// ProfitLoss handles GET /statements/profit-loss.
func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	data, err := h.service.ProfitLoss(r.Context(), req.CompanyID, req.FiscalYearID, parseDate(req.DateFrom), parseDate(req.DateTo))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) parseRequest(r *http.Request) (statementRequest, error) {
	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	fiscalYearID, _ := strconv.ParseInt(q.Get("fiscal_year_id"), 10, 64)
	req := statementRequest{
		CompanyID:    companyID,
		FiscalYearID: fiscalYearID,
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
	}
	if err := h.validate.Struct(req); err != nil {
		return statementRequest{}, err
	}
	return req, nil
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ledger.ErrFiscalYearNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	h.logger.Error("statement report failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
