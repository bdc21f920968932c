package delivery

import (
	"net/http"

	"go-logistics/internal/delivery/ws"
	"go-logistics/internal/shared/apperror"
	"go-logistics/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	reports ReportService
	hub     *ws.Hub
	logger  *zap.Logger
}

func NewHandler(service Service, reports ReportService, hub *ws.Hub, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("delivery.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.handler")
	}
	return &Handler{service: service, reports: reports, hub: hub, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Transition(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateLocation(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListCheckpoints(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListCheckpoints(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetReport returns the summary report for a delivered delivery. The
// report is generated asynchronously, so a recently delivered delivery
// may 404 here until the worker catches up.
func (h *Handler) GetReport(c *gin.Context) {
	companyID := c.GetString("company_id")

	report, err := h.reports.GetByDeliveryID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ReportResponse{
		ID:              report.ID.String(),
		DeliveryID:      report.DeliveryID.String(),
		TrackingNumber:  report.TrackingNumber,
		CheckpointCount: report.CheckpointCount,
		DistanceMeters:  report.DistanceMeters,
		TransitSeconds:  report.TransitDuration,
		DeliveredAt:     report.DeliveredAt,
	}, nil)
}

// Subscribe upgrades the request to a WebSocket on the delivery's
// channel. The delivery must exist and belong to the caller's tenant.
func (h *Handler) Subscribe(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	if _, err := h.service.GetByID(c.Request.Context(), companyID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.hub.Subscribe(c.Writer, c.Request, id); err != nil {
		h.logger.Warn("ws upgrade failed", zap.String("delivery_id", id), zap.Error(err))
	}
}
