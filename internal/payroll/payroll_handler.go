package payroll

import (
	"net/http"
	"strconv"
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotentResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindPeriodQuery(c *gin.Context) (PeriodQuery, bool) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return PeriodQuery{}, false
	}
	return q, true
}

func (h *Handler) Calculate(c *gin.Context) {
	q, ok := h.bindPeriodQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), c.Param("employee_id"), q.Year, q.Month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Preview(c *gin.Context) {
	q, ok := h.bindPeriodQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.CalculateAll(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.StoreIdempotentResult(c, h.rdb, nil, false, 0)
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.GenerateForMonth(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		middleware.StoreIdempotentResult(c, h.rdb, nil, false, 0)
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResult(c, h.rdb, result, true, idempotentResultTTL)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) GenerateAsync(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.StoreIdempotentResult(c, h.rdb, nil, false, 0)
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RequestGeneration(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		middleware.StoreIdempotentResult(c, h.rdb, nil, false, 0)
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResult(c, h.rdb, resp, true, idempotentResultTTL)
	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	q, ok := h.bindPeriodQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.ListSnapshots(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, size := response.PageParams(c)
	response.SuccessPage(c, http.StatusOK, resp, page, size)
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	year, yErr := strconv.Atoi(c.Param("year"))
	month, mErr := strconv.Atoi(c.Param("month"))
	if yErr != nil || mErr != nil {
		h.writeServiceError(c, apperror.ErrInvalidPeriod)
		return
	}

	resp, err := h.service.GetSnapshot(c.Request.Context(), c.Param("employee_id"), year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
