package profile

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"rocketshop/internal/models"
)

// EmptyHistoryMessage is shown when the user has no purchases
const EmptyHistoryMessage = "Покупок пока нет"

var statusLabels = map[string]string{
	models.PurchaseStatusCompleted: "Завершен",
	models.PurchaseStatusPending:   "В обработке",
}

// PurchaseSource supplies a user's purchase history
type PurchaseSource interface {
	ListPurchases(ctx context.Context, username string) ([]models.Purchase, error)
}

// EmptySource is a PurchaseSource with no history
type EmptySource struct{}

// ListPurchases always returns no purchases
func (EmptySource) ListPurchases(context.Context, string) ([]models.Purchase, error) {
	return nil, nil
}

// PurchaseEntry is a purchase as listed in the profile
type PurchaseEntry struct {
	models.Purchase
	StatusLabel string `json:"status_label"`
}

// View is the read-only profile projection
type View struct {
	Username      string          `json:"username"`
	Initial       string          `json:"initial"`
	RegisteredAt  time.Time       `json:"registered_at"`
	PurchaseCount int             `json:"purchase_count"`
	Purchases     []PurchaseEntry `json:"purchases"`
	Empty         bool            `json:"empty"`
	Message       string          `json:"message,omitempty"`
}

// Build projects username, registration date and purchases into a View.
// Purchases are listed newest first; equal dates keep their supplied order.
func Build(username string, registeredAt time.Time, purchases []models.Purchase) View {
	v := View{
		Username:      username,
		Initial:       initial(username),
		RegisteredAt:  registeredAt,
		PurchaseCount: len(purchases),
		Purchases:     make([]PurchaseEntry, 0, len(purchases)),
	}

	for _, p := range purchases {
		v.Purchases = append(v.Purchases, PurchaseEntry{Purchase: p, StatusLabel: statusLabels[p.Status]})
	}
	sort.SliceStable(v.Purchases, func(i, j int) bool {
		return v.Purchases[i].Date.After(v.Purchases[j].Date)
	})

	if len(purchases) == 0 {
		v.Empty = true
		v.Message = EmptyHistoryMessage
	}
	return v
}

func initial(username string) string {
	for _, r := range strings.TrimSpace(username) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
