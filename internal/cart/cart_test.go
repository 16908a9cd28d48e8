package cart

import (
	"testing"

	"rocketshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wowTime = models.Product{ID: 1, Name: "Игровое время 60 дней", Game: "World of Warcraft", Price: 1499}
	vbucks  = models.Product{ID: 2, Name: "V-Bucks 2800", Game: "Fortnite", Price: 1299}
	uc      = models.Product{ID: 3, Name: "UC 660", Game: "PUBG Mobile", Price: 799}
)

func TestAddNewAndExisting(t *testing.T) {
	var c Cart

	res := c.Add(wowTime)
	assert.True(t, res.Created)
	assert.True(t, res.OpenCart)
	assert.Equal(t, 1, res.Line.Quantity)

	res = c.Add(wowTime)
	assert.False(t, res.Created)
	assert.True(t, res.OpenCart)
	assert.Equal(t, 2, res.Line.Quantity)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	var c Cart
	c.Add(vbucks)
	c.Add(wowTime)
	c.Add(vbucks)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, int64(2), c.Lines[0].Product.ID)
	assert.Equal(t, int64(1), c.Lines[1].Product.ID)
}

func TestRemove(t *testing.T) {
	var c Cart
	c.Add(wowTime)
	c.Add(vbucks)

	assert.True(t, c.Remove(wowTime.ID))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, vbucks.ID, c.Lines[0].Product.ID)

	before := append([]models.CartLine(nil), c.Lines...)
	assert.False(t, c.Remove(99))
	assert.Equal(t, before, c.Lines)
}

func TestUpdateQuantityClamps(t *testing.T) {
	var c Cart
	c.Add(uc)

	assert.True(t, c.UpdateQuantity(uc.ID, 5))
	line, _ := c.Line(uc.ID)
	assert.Equal(t, 5, line.Quantity)

	c.UpdateQuantity(uc.ID, 0)
	line, _ = c.Line(uc.ID)
	assert.Equal(t, 1, line.Quantity)

	c.UpdateQuantity(uc.ID, -5)
	line, _ = c.Line(uc.ID)
	assert.Equal(t, 1, line.Quantity)

	assert.False(t, c.UpdateQuantity(42, 3))
	assert.Len(t, c.Lines, 1)
}

func TestIncrementDecrement(t *testing.T) {
	var c Cart
	c.Add(uc)

	c.Increment(uc.ID)
	c.Increment(uc.ID)
	line, _ := c.Line(uc.ID)
	assert.Equal(t, 3, line.Quantity)

	c.Decrement(uc.ID)
	c.Decrement(uc.ID)
	c.Decrement(uc.ID)
	line, _ = c.Line(uc.ID)
	assert.Equal(t, 1, line.Quantity)

	assert.False(t, c.Increment(42))
	assert.False(t, c.Decrement(42))
}

func TestSubtotalAndItemCount(t *testing.T) {
	var c Cart
	assert.Equal(t, int64(0), c.Subtotal())
	assert.True(t, c.IsEmpty())

	c.Add(wowTime)
	c.Add(wowTime)
	c.Add(uc)

	assert.Equal(t, int64(2*1499+799), c.Subtotal())
	assert.Equal(t, 3, c.ItemCount())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Subtotal())
}

func TestTotalsWithDiscount(t *testing.T) {
	c := Cart{Lines: []models.CartLine{
		{Product: models.Product{ID: 1, Price: 250}, Quantity: 4},
	}}

	d := NewDiscount(20)
	totals := c.Totals(d)
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Discount)
	assert.Equal(t, int64(1000), totals.Total)

	d.Activate()
	totals = c.Totals(d)
	assert.Equal(t, int64(20), totals.DiscountPercent)
	assert.Equal(t, int64(200), totals.Discount)
	assert.Equal(t, int64(800), totals.Total)
	assert.Equal(t, 4, totals.ItemCount)
}

func TestTotalsRecomputedAfterMutation(t *testing.T) {
	var c Cart
	d := NewDiscount(20)
	d.Activate()

	c.Add(uc)
	assert.Equal(t, int64(160), c.Totals(d).Discount)

	c.Add(uc)
	assert.Equal(t, int64(320), c.Totals(d).Discount)
	assert.Equal(t, int64(1278), c.Totals(d).Total)
}

func TestDiscountActivateOnce(t *testing.T) {
	d := NewDiscount(20)
	assert.Equal(t, int64(0), d.EffectivePercent())

	assert.True(t, d.Activate())
	assert.False(t, d.Activate())
	assert.True(t, d.Activated)
	assert.Equal(t, int64(20), d.EffectivePercent())
}

func TestNewDiscountClampsPercent(t *testing.T) {
	assert.Equal(t, int64(0), NewDiscount(-10).Percent)
	assert.Equal(t, int64(100), NewDiscount(150).Percent)

	c := &Cart{}
	c.Add(models.Product{ID: 1, Price: 1000})
	d := NewDiscount(150)
	d.Activate()
	assert.Equal(t, int64(0), c.Totals(d).Total)
}
