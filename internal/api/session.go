package api

import (
	"errors"
	"io"
	"net/http"

	"rocketshop/internal/catalog"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	Username string `json:"username"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body", err)
		return
	}

	view, err := h.sessions.Create(c.Request.Context(), req.Username)
	if err != nil {
		h.respondError(c, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *Handler) getSession(c *gin.Context) {
	view, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Session not available", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "Failed to delete session", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) setFilters(c *gin.Context) {
	var q catalog.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	res, err := h.sessions.SetFilters(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.respondError(c, "Failed to update filters", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) browse(c *gin.Context) {
	res, err := h.sessions.Browse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Failed to query catalog", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
