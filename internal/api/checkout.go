package api

import (
	"context"
	"net/http"

	"rocketshop/internal/checkout"

	"github.com/gin-gonic/gin"
)

type chooseMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

type checkoutOp func(ctx context.Context, id string) (checkout.View, error)

func (h *Handler) getCheckout(c *gin.Context) {
	h.checkoutAction(c, "Checkout not available", h.sessions.Checkout)
}

func (h *Handler) openCheckout(c *gin.Context) {
	h.checkoutAction(c, "Failed to start checkout", h.sessions.OpenCheckout)
}

func (h *Handler) closeCheckout(c *gin.Context) {
	h.checkoutAction(c, "Failed to close checkout", h.sessions.CloseCheckout)
}

func (h *Handler) backToMethods(c *gin.Context) {
	h.checkoutAction(c, "Failed to return to payment methods", h.sessions.BackToMethods)
}

func (h *Handler) chooseMethod(c *gin.Context) {
	var req chooseMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	view, err := h.sessions.ChooseMethod(c.Request.Context(), c.Param("id"), req.Method)
	if err != nil {
		h.respondError(c, "Failed to choose payment method", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) checkoutAction(c *gin.Context, message string, fn checkoutOp) {
	view, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, message, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
