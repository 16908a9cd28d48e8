package api

import (
	"net/http"
	"strings"
	"time"

	"rocketshop/internal/profile"

	"github.com/gin-gonic/gin"
)

// Contact is a Telegram handle with its link
type Contact struct {
	Handle string `json:"handle"`
	Link   string `json:"link"`
}

func telegramContact(handle string) Contact {
	handle = strings.TrimPrefix(handle, "@")
	return Contact{Handle: "@" + handle, Link: "https://t.me/" + handle}
}

// getProfile builds the profile for ?session_id= when given, otherwise
// for ?username= or the default username
func (h *Handler) getProfile(c *gin.Context) {
	ctx := c.Request.Context()

	username := c.Query("username")
	registeredAt := h.startedAt
	if id := c.Query("session_id"); id != "" {
		view, err := h.sessions.Get(ctx, id)
		if err != nil {
			h.respondError(c, "Session not available", err)
			return
		}
		username = view.Username
		registeredAt = view.CreatedAt
	}
	if username == "" {
		username = h.opts.DefaultUsername
	}

	purchases, err := h.purchases.ListPurchases(ctx, username)
	if err != nil {
		h.respondError(c, "Failed to load purchase history", err)
		return
	}

	c.JSON(http.StatusOK, profile.Build(username, registeredAt.Truncate(time.Second), purchases))
}

func (h *Handler) getContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"support": telegramContact(h.opts.SupportHandle),
		"reviews": telegramContact(h.opts.ReviewsHandle),
	})
}
