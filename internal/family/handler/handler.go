package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"famcard/internal/family/models"
	dErrors "famcard/pkg/domain-errors"
	"famcard/pkg/platform/httputil"
	"famcard/pkg/requestcontext"
)

const maxBodyBytes = 4 << 10

// Service defines the family lookup operations.
type Service interface {
	Lookup(ctx context.Context, rawIIN string) (*models.Family, error)
	Refresh(ctx context.Context, rawIIN string) (*models.Family, error)
}

// Handler wires the family endpoints to the lookup service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a family handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts family endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/family", h.HandleGet)
	r.Post("/family", h.HandlePost)
}

// LookupRequest is the body of POST /family.
type LookupRequest struct {
	IIN     string `json:"iin"`
	Refresh bool   `json:"refresh"`
}

// HandleGet handles GET /family?iin=<iin>[&refresh=true].
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var refresh bool
	if raw := q.Get("refresh"); raw != "" {
		var err error
		if refresh, err = strconv.ParseBool(raw); err != nil {
			h.logger.WarnContext(r.Context(), "malformed refresh flag",
				"request_id", requestcontext.RequestID(r.Context()),
				"refresh", raw,
			)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, "malformed refresh flag"))
			return
		}
	}
	h.lookup(w, r, LookupRequest{IIN: q.Get("iin"), Refresh: refresh})
}

// HandlePost handles POST /family.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "malformed lookup request",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, "malformed request body"))
		return
	}
	h.lookup(w, r, req)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, req LookupRequest) {
	ctx := r.Context()
	start := time.Now()

	lookupFn := h.service.Lookup
	if req.Refresh {
		lookupFn = h.service.Refresh
	}

	family, err := lookupFn(ctx, req.IIN)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "family served",
		"request_id", requestcontext.RequestID(ctx),
		"refresh", req.Refresh,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteData(w, family.ToMap())
}
