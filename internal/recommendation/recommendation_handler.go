package recommendation

import (
	"net/http"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recommendation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recommendation.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("recommendation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create recommendation bad payload", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	h.logger.Debug("http create recommendation",
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
	)

	resp, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Process(c *gin.Context) {
	ctx := c.Request.Context()
	recID := c.Param("id")

	var req ProcessRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http process recommendation bad payload", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	h.logger.Debug("http process recommendation",
		zap.String("recommendation_id", recID),
		zap.String("decision", req.Status),
	)

	resp, err := h.service.Process(ctx, recID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http pending recommendations")

	resp, err := h.service.Pending(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Processed(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http processed recommendations")

	resp, err := h.service.Processed(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
