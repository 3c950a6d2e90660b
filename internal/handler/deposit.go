package handler

import (
	"github.com/gin-gonic/gin"

	"linkpulse-core/internal/handler/request"
	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/middleware"
	"linkpulse-core/internal/service"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/validator"
)

type DepositHandler struct {
	deposits *service.DepositService
	catalog  *service.CatalogService
}

func NewDepositHandler(deposits *service.DepositService, catalog *service.CatalogService) *DepositHandler {
	return &DepositHandler{deposits: deposits, catalog: catalog}
}

// ListPackages returns the points catalog.
// @Summary List point packages
// @Tags Deposit
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/packages [get]
func (h *DepositHandler) ListPackages(c *gin.Context) {
	pkgs, err := h.catalog.ListPackages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"packages": pkgs})
}

// CreateOrder creates or rewrites the caller's draft order.
// @Summary Create or update the draft order
// @Tags Deposit
// @Accept json
// @Produce json
// @Param request body request.CreateOrderRequest true "order payload"
// @Success 200 {object} response.Response
// @Router /api/v1/deposit/order [post]
func (h *DepositHandler) CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	summary, err := h.deposits.CreateOrUpdateOrder(c.Request.Context(), user, service.CreateOrderInput{
		PackageID:      req.PackageID,
		Quantity:       req.Quantity,
		CouponCode:     req.CouponCode,
		Currency:       req.Currency,
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}

// Checkout generates the payment intent for the draft order.
// @Summary Generate a payment intent / QR for the draft order
// @Tags Deposit
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "checkout payload"
// @Success 200 {object} response.Response
// @Router /api/v1/deposit/checkout [post]
func (h *DepositHandler) Checkout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	dep, err := h.deposits.Checkout(c.Request.Context(), user, req.Method, c.GetHeader("Accept-Language"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"order_code":   dep.OrderCode,
		"pay_order_id": dep.PayOrderID,
		"status":       dep.Status,
		"method":       req.Method,
	})
}

// CurrentOrder returns the caller's live draft order.
// @Summary Get the current draft order
// @Tags Deposit
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/deposit/current [get]
func (h *DepositHandler) CurrentOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	dep, err := h.deposits.CurrentOrder(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dep)
}
