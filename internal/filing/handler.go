package filing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fiskal-sk/fiskal/internal/ledger"
	"github.com/fiskal-sk/fiskal/internal/platform/httpx"
)

// Handler serves filing exports and direct XML renders over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the filing HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers filing endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/filings", h.Create)
	r.Get("/filings/{id}", h.Get)
	r.Get("/filings/{id}/document", h.Document)
	r.Get("/filings/ruz.xml", h.RUZ)
	r.Get("/filings/vat-return.xml", h.VATReturn)
	r.Get("/filings/control-report.xml", h.ControlReport)
}

type createRequest struct {
	CompanyID    int64  `json:"company_id" validate:"required,gt=0"`
	DocumentType string `json:"document_type" validate:"required,oneof=ruz vat_return control_report"`
	FiscalYearID *int64 `json:"fiscal_year_id,omitempty" validate:"omitempty,gt=0"`
	PeriodFrom   string `json:"period_from" validate:"required,datetime=2006-01-02"`
	PeriodTo     string `json:"period_to" validate:"required,datetime=2006-01-02"`
}

// Create handles POST /filings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	from, _ := time.Parse("2006-01-02", req.PeriodFrom)
	to, _ := time.Parse("2006-01-02", req.PeriodTo)

	f, err := h.service.RequestExport(r.Context(), ExportRequest{
		CompanyID:    req.CompanyID,
		DocumentType: req.DocumentType,
		FiscalYearID: req.FiscalYearID,
		PeriodFrom:   from,
		PeriodTo:     to,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, f)
}

// Get handles GET /filings/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid filing id")
		return
	}
	f, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

// Document handles GET /filings/{id}/document.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid filing id")
		return
	}
	document, err := h.service.Document(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.XML(w, http.StatusOK, document)
}

type ruzRequest struct {
	CompanyID    int64 `validate:"required,gt=0"`
	FiscalYearID int64 `validate:"required,gt=0"`
}

// RUZ handles GET /filings/ruz.xml.
func (h *Handler) RUZ(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	fiscalYearID, _ := strconv.ParseInt(q.Get("fiscal_year_id"), 10, 64)
	req := ruzRequest{CompanyID: companyID, FiscalYearID: fiscalYearID}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	enc, err := ParseEncoding(q.Get("encoding"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	document, err := h.service.BuildRUZ(r.Context(), req.CompanyID, req.FiscalYearID, enc)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.XML(w, http.StatusOK, document)
}

// VATReturn handles GET /filings/vat-return.xml.
func (h *Handler) VATReturn(w http.ResponseWriter, r *http.Request) {
	h.renderPeriodXML(w, r, h.service.BuildVATReturn)
}

// ControlReport handles GET /filings/control-report.xml.
func (h *Handler) ControlReport(w http.ResponseWriter, r *http.Request) {
	h.renderPeriodXML(w, r, h.service.BuildControlReport)
}

type periodRequest struct {
	CompanyID int64  `validate:"required,gt=0"`
	From      string `validate:"required,datetime=2006-01-02"`
	To        string `validate:"required,datetime=2006-01-02"`
}

type periodRender func(ctx context.Context, companyID int64, from, to time.Time, enc Encoding) (string, error)

func (h *Handler) renderPeriodXML(w http.ResponseWriter, r *http.Request, build periodRender) {
	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	req := periodRequest{CompanyID: companyID, From: q.Get("from"), To: q.Get("to")}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	enc, err := ParseEncoding(q.Get("encoding"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	document, err := build(r.Context(), req.CompanyID, from, to, enc)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.XML(w, http.StatusOK, document)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrFilingNotFound), errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ledger.ErrFiscalYearNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateFiling):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrUnknownDocumentType), errors.Is(err, ErrMissingFiscalYear):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrDocumentNotReady):
		httpx.Problem(w, http.StatusConflict, "Not Ready", err.Error())
	default:
		h.logger.Error("filing request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
