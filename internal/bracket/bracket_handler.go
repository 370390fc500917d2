package bracket

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) kind(c *gin.Context) (Kind, bool) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		h.writeServiceError(c, err)
		return "", false
	}
	return kind, true
}

func (h *Handler) GetAll(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req CreateBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), kind, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req UpdateBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), kind, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), kind, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true}, nil)
}

func (h *Handler) Match(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var q MatchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, err)
		return
	}

	matched, err := h.service.Match(c.Request.Context(), kind, *q.Input)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := MatchResponse{Input: *q.Input, Percentage: decimal.Zero}
	if matched != nil {
		b := mapToResponse(*matched)
		resp.Matched = true
		resp.Percentage = matched.Percentage
		resp.Bracket = &b
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ValidateOverlap(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var q OverlapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, err)
		return
	}

	valid, err := h.service.ValidateNoOverlap(c.Request.Context(), kind, *q.MinBound, q.MaxBound, q.ExcludeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, OverlapResponse{Valid: valid}, nil)
}
