package hr

import (
	"encoding/json"
	"net/http"
	"time"

	"go-logistics/internal/shared/apperror"
	"go-logistics/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	profiles ProfileService
	records  WorkRecordService
	payments PaymentService
	rdb      *redis.Client
}

func NewHandler(profiles ProfileService, records WorkRecordService, payments PaymentService) *Handler {
	return &Handler{profiles: profiles, records: records, payments: payments}
}

func NewHandlerWithRedis(profiles ProfileService, records WorkRecordService, payments PaymentService, rdb *redis.Client) *Handler {
	return &Handler{profiles: profiles, records: records, payments: payments, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateProfile(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.profiles.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllProfiles(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.profiles.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetProfileByID(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.profiles.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.profiles.Update(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.profiles.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusNoContent, nil, nil)
}

func (h *Handler) CreateWorkedDay(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateWorkedDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.records.CreateWorkedDay(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteWorkedDay(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.records.DeleteWorkedDay(c.Request.Context(), companyID, c.Param("id"), c.Param("dayId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusNoContent, nil, nil)
}

func (h *Handler) ListWorkedDays(c *gin.Context) {
	companyID := c.GetString("company_id")

	start, end, err := parsePeriodQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.records.ListWorkedDays(c.Request.Context(), companyID, c.Param("id"), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateWorkHour(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateWorkHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.records.CreateWorkHour(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateWorkHour(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateWorkHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.records.UpdateWorkHour(c.Request.Context(), companyID, c.Param("id"), c.Param("hourId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteWorkHour(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.records.DeleteWorkHour(c.Request.Context(), companyID, c.Param("id"), c.Param("hourId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusNoContent, nil, nil)
}

func (h *Handler) ListWorkHours(c *gin.Context) {
	companyID := c.GetString("company_id")

	start, end, err := parsePeriodQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.records.ListWorkHours(c.Request.Context(), companyID, c.Param("id"), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ProcessPayment settles the current period. The idempotency middleware
// takes a lock before we get here; we release it and cache the response
// so replays with the same key return the original result.
func (h *Handler) ProcessPayment(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	companyID := c.GetString("company_id")

	resp, err := h.payments.ProcessPayment(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPaymentHistories(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.payments.ListPaymentHistories(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListWorkHistories(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.payments.ListWorkHistories(c.Request.Context(), companyID, c.Param("id"), c.Param("paymentId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parsePeriodQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, apperror.InvalidField("Start")
		}
		start = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, apperror.InvalidField("End")
		}
		end = &t
	}
	return start, end, nil
}
