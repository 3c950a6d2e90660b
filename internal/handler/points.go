package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"linkpulse-core/internal/handler/request"
	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/middleware"
	"linkpulse-core/internal/service"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/validator"
)

type PointsHandler struct {
	ledger *service.LedgerService
	index  *service.IndexService
}

func NewPointsHandler(ledger *service.LedgerService, index *service.IndexService) *PointsHandler {
	return &PointsHandler{ledger: ledger, index: index}
}

// Balance returns the derived balance summary.
// @Summary Get the point balance
// @Tags Points
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/points/balance [get]
func (h *PointsHandler) Balance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	bal, err := h.ledger.ComputeBalance(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bal)
}

// Transactions returns a page of the caller's ledger.
// @Summary List ledger entries
// @Tags Points
// @Produce json
// @Param page query int false "page number"
// @Param page_size query int false "page size"
// @Success 200 {object} response.Response
// @Router /api/v1/points/transactions [get]
func (h *PointsHandler) Transactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, total, err := h.ledger.ListTransactions(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"transactions": entries,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// CreateIndexBatch submits URLs for indexing, charging points.
// @Summary Submit an indexing batch
// @Tags Points
// @Accept json
// @Produce json
// @Param request body request.CreateIndexBatchRequest true "urls"
// @Success 200 {object} response.Response
// @Router /api/v1/index/requests [post]
func (h *PointsHandler) CreateIndexBatch(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	var req request.CreateIndexBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	batch, err := h.index.CreateBatch(c.Request.Context(), user, req.URLs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, batch)
}
