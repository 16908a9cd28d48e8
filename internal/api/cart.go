package api

import (
	"context"
	"net/http"
	"strconv"

	"rocketshop/internal/session"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type lineMutation func(ctx context.Context, id string, productID int64) (session.CartView, error)

func (h *Handler) getCart(c *gin.Context) {
	view, err := h.sessions.Cart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Cart not available", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	res, err := h.sessions.AddToCart(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		h.respondError(c, "Failed to add product", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) updateQuantity(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	view, err := h.sessions.UpdateQuantity(c.Request.Context(), c.Param("id"), productID, *req.Quantity)
	if err != nil {
		h.respondError(c, "Failed to update quantity", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeFromCart(c *gin.Context) {
	h.mutateLine(c, "Failed to remove product", h.sessions.RemoveFromCart)
}

func (h *Handler) incrementQuantity(c *gin.Context) {
	h.mutateLine(c, "Failed to update quantity", h.sessions.IncrementQuantity)
}

func (h *Handler) decrementQuantity(c *gin.Context) {
	h.mutateLine(c, "Failed to update quantity", h.sessions.DecrementQuantity)
}

func (h *Handler) mutateLine(c *gin.Context, message string, fn lineMutation) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	view, err := fn(c.Request.Context(), c.Param("id"), productID)
	if err != nil {
		h.respondError(c, message, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	view, err := h.sessions.ClearCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Failed to clear cart", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) openCart(c *gin.Context) {
	h.setCartOpen(c, true)
}

func (h *Handler) closeCart(c *gin.Context) {
	h.setCartOpen(c, false)
}

func (h *Handler) setCartOpen(c *gin.Context, open bool) {
	view, err := h.sessions.SetCartOpen(c.Request.Context(), c.Param("id"), open)
	if err != nil {
		h.respondError(c, "Failed to toggle cart", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) activateDiscount(c *gin.Context) {
	view, err := h.sessions.ActivateDiscount(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Failed to activate discount", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func productIDParam(c *gin.Context) (int64, bool) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid product ID", nil)
		return 0, false
	}
	return productID, true
}
