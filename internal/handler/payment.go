package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/payment"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/validator"
)

// PaymentHandler receives provider callbacks. Whatever the settlement
// outcome (completed, failed, dropped, insufficient), the provider gets a
// 200: dropped and insufficient events are operational no-ops, not errors.
//
// Every route verifies the HMAC signature over the raw body before the
// payload is parsed; a forged callback never reaches the settlement path.
type PaymentHandler struct {
	bank   *payment.BankAdapter
	paypal *payment.PayPalAdapter
	vietqr *payment.VietQRAdapter
}

func NewPaymentHandler(bank *payment.BankAdapter, paypal *payment.PayPalAdapter, vietqr *payment.VietQRAdapter) *PaymentHandler {
	return &PaymentHandler{bank: bank, paypal: paypal, vietqr: vietqr}
}

// verifiedBody reads the raw body, checks the X-Signature header with the
// adapter's verifier and returns the bytes for binding. A nil return means
// the request was already answered.
func verifiedBody(c *gin.Context, verify func(payload []byte, signature string) bool) []byte {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return nil
	}
	if !verify(body, c.GetHeader("X-Signature")) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return nil
	}
	return body
}

// BankNotification handles the bank-transfer mail parser callback.
// @Summary Bank transfer notification webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /webhooks/bank [post]
func (h *PaymentHandler) BankNotification(c *gin.Context) {
	body := verifiedBody(c, h.bank.VerifySignature)
	if body == nil {
		return
	}

	var n payment.BankNotification
	if err := binding.JSON.BindBody(body, &n); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	result, err := h.bank.HandleNotification(c.Request.Context(), n)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"outcome": result.Outcome})
}

// PayPalCapture handles the PayPal capture result.
// @Summary PayPal capture webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /webhooks/paypal [post]
func (h *PaymentHandler) PayPalCapture(c *gin.Context) {
	body := verifiedBody(c, h.paypal.VerifySignature)
	if body == nil {
		return
	}

	var capture payment.PayPalCapture
	if err := binding.JSON.BindBody(body, &capture); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	result, err := h.paypal.HandleCapture(c.Request.Context(), capture)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"outcome": result.Outcome})
}

// VietQRCallback handles the VietQR gateway status callback.
// @Summary VietQR status webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /webhooks/vietqr [post]
func (h *PaymentHandler) VietQRCallback(c *gin.Context) {
	body := verifiedBody(c, h.vietqr.VerifySignature)
	if body == nil {
		return
	}

	var cb payment.VietQRCallback
	if err := binding.JSON.BindBody(body, &cb); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	result, err := h.vietqr.HandleCallback(c.Request.Context(), cb)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"outcome": result.Outcome})
}
