package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/jordanlanch/crewops/pkg/api/errors"
	"github.com/jordanlanch/crewops/pkg/conflict"
	"github.com/jordanlanch/crewops/pkg/logger"
	"github.com/jordanlanch/crewops/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// ConflictsHandler serves schedule conflict checks.
type ConflictsHandler struct {
	detector  *conflict.Detector
	metrics   *metrics.Metrics
	log       logger.Logger
	validator *validator.Validate
}

// NewConflictsHandler creates a new conflicts handler. Metrics are
// optional; nil disables them.
func NewConflictsHandler(m *metrics.Metrics, log logger.Logger) *ConflictsHandler {
	return &ConflictsHandler{
		detector:  conflict.New(),
		metrics:   m,
		log:       log,
		validator: validator.New(),
	}
}

// CheckConflictsRequest carries the prospective entry and the existing
// commitments it is validated against. Context entries must be
// pre-filtered to the entry's calendar date.
type CheckConflictsRequest struct {
	Entry   conflict.CheckInput   `json:"entry"`
	Context conflict.CheckContext `json:"context"`
}

// CheckConflictsResponse is the graded conflict list plus the derived
// blocking flag and summary the workflow layer keys off.
type CheckConflictsResponse struct {
	Conflicts []conflict.Conflict `json:"conflicts"`
	Blocking  bool                `json:"blocking"`
	Summary   string              `json:"summary"`
}

// Check validates a prospective schedule entry and returns zero or more
// graded conflicts. The caller decides whether to proceed, warn, or block
// based on severity.
func (h *ConflictsHandler) Check(c echo.Context) error {
	var req CheckConflictsRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BadRequestError(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if req.Entry.CrewID == nil && req.Entry.SalesRepID == nil {
		return apierrors.BadRequestError(c, "Entry must reference a crew or a sales rep")
	}

	conflicts := h.detector.Detect(req.Entry, req.Context)
	blocking := conflict.HasBlockingConflicts(conflicts)

	if h.metrics != nil {
		counts := make(map[string]int, 3)
		for _, cf := range conflicts {
			counts[string(cf.Severity)]++
		}
		h.metrics.RecordConflictCheck(blocking, counts)
	}
	h.log.Debug("schedule conflict check completed",
		"date", req.Entry.Date,
		"entry_type", req.Entry.Type,
		"conflicts", len(conflicts),
		"blocking", blocking,
	)

	return c.JSON(http.StatusOK, CheckConflictsResponse{
		Conflicts: conflicts,
		Blocking:  blocking,
		Summary:   conflict.Summarize(conflicts),
	})
}
