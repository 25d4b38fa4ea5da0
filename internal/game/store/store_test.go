package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalog([]entities.StoreItem{
		{ID: "page_2", Name: "صفحة 2", Type: entities.ItemPages, Price: 10},
		{ID: "range_small", Name: "نطاق", Type: entities.ItemRanges, Price: 25, Value: "2-4"},
		{ID: "qari_ar.husary", Name: "الحصري", Type: entities.ItemQari, Price: 80},
		{ID: "energy_stars_pack", Name: "نجوم", Type: entities.ItemConsumable, Price: 30, Value: "3"},
		{ID: "exchange_small", Name: "مبادلة", Type: entities.ItemExchange, Price: 200, Value: "10"},
	}, zap.NewNop())
}

func testPlayer(diamonds, xp int) *entities.Player {
	p := &entities.Player{ID: 1, Diamonds: diamonds, XP: xp}
	p.Normalize()
	return p
}

func TestOwnership(t *testing.T) {
	c := testCatalog(t)
	p := testPlayer(0, 0)

	page, _ := c.Item("page_2")
	assert.False(t, c.Owned(page, p))
	p.AddItem("page_2")
	assert.True(t, c.Owned(page, p))

	// A range is owned only when every page in it is.
	rng, _ := c.Item("range_small")
	p.AddItem("page_3")
	assert.False(t, c.Owned(rng, p))
	p.AddItem("page_4")
	assert.True(t, c.Owned(rng, p))

	// Consumables and exchanges can always be bought again.
	stars, _ := c.Item("energy_stars_pack")
	exch, _ := c.Item("exchange_small")
	assert.False(t, c.Owned(stars, p))
	assert.False(t, c.Owned(exch, p))
}

func TestAffordability(t *testing.T) {
	c := testCatalog(t)

	page, _ := c.Item("page_2")
	assert.True(t, c.CanAfford(page, testPlayer(10, 0)))
	assert.False(t, c.CanAfford(page, testPlayer(9, 0)))

	// Exchange items cost xp, not diamonds.
	exch, _ := c.Item("exchange_small")
	assert.True(t, c.CanAfford(exch, testPlayer(0, 200)))
	assert.False(t, c.CanAfford(exch, testPlayer(500, 199)))
}

func TestPurchasePage(t *testing.T) {
	c := testCatalog(t)
	p := testPlayer(15, 0)
	bus := eventbus.New(zap.NewNop())

	var payload eventbus.Payload
	bus.Subscribe(eventbus.EventItemPurchased, func(pl eventbus.Payload) { payload = pl })

	item, err := c.Purchase(p, "page_2", bus)
	require.NoError(t, err)
	assert.Equal(t, "page_2", item.ID)
	assert.Equal(t, 5, p.Diamonds)
	assert.True(t, p.HasItem("page_2"))

	require.NotNil(t, payload)
	assert.Equal(t, "page_2", payload["itemId"])
	assert.Equal(t, "pages", payload["itemType"])

	_, err = c.Purchase(p, "page_2", bus)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
}

func TestPurchaseRangeUnlocksEveryPage(t *testing.T) {
	c := testCatalog(t)
	p := testPlayer(25, 0)
	p.AddItem("page_3") // already owned pages are not duplicated

	_, err := c.Purchase(p, "range_small", eventbus.New(zap.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, 0, p.Diamonds)
	assert.ElementsMatch(t, []string{"page_2", "page_3", "page_4"}, p.Inventory)
}

func TestPurchaseConsumableCreditsEnergyStars(t *testing.T) {
	c := testCatalog(t)
	p := testPlayer(60, 0)
	bus := eventbus.New(zap.NewNop())

	_, err := c.Purchase(p, "energy_stars_pack", bus)
	require.NoError(t, err)
	assert.Equal(t, 3, p.EnergyStars)

	// Consumables repeat.
	_, err = c.Purchase(p, "energy_stars_pack", bus)
	require.NoError(t, err)
	assert.Equal(t, 6, p.EnergyStars)
	assert.Equal(t, 0, p.Diamonds)
}

func TestPurchaseExchangeConvertsXP(t *testing.T) {
	c := testCatalog(t)
	p := testPlayer(0, 250)

	_, err := c.Purchase(p, "exchange_small", eventbus.New(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, 50, p.XP)
	assert.Equal(t, 10, p.Diamonds)
}

func TestPurchaseFailures(t *testing.T) {
	c := testCatalog(t)
	bus := eventbus.New(zap.NewNop())

	_, err := c.Purchase(testPlayer(100, 0), "no_such_item", bus)
	assert.ErrorIs(t, err, ErrItemNotFound)

	p := testPlayer(5, 0)
	_, err = c.Purchase(p, "page_2", bus)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 5, p.Diamonds, "failed purchase must not debit")
	assert.Empty(t, p.Inventory)
}

func TestDefaultItemsParse(t *testing.T) {
	c := NewCatalog(DefaultItems(), zap.NewNop())
	require.NotEmpty(t, c.Items())

	for _, item := range c.Items() {
		switch item.Type {
		case entities.ItemRanges, entities.ItemJuz:
			_, _, err := item.PageRange()
			assert.NoError(t, err, item.ID)
		case entities.ItemConsumable, entities.ItemExchange:
			assert.Greater(t, item.Quantity(), 0, item.ID)
		}
	}

	assert.NotEmpty(t, c.ItemsByType(entities.ItemQari))
}
