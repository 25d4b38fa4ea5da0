// Package store implements the purchase rules for the item catalog: page and
// range unlocks, recitation voices, themes, consumables, and xp-to-diamond
// exchanges.
package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
)

var (
	ErrItemNotFound      = errors.New("store item not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient balance for this purchase")
)

// Catalog is the purchasable item set. Items are static per process; the
// catalog itself never mutates players outside Purchase.
type Catalog struct {
	items  map[string]entities.StoreItem
	order  []string
	logger *zap.Logger
}

func NewCatalog(items []entities.StoreItem, logger *zap.Logger) *Catalog {
	c := &Catalog{
		items:  make(map[string]entities.StoreItem, len(items)),
		logger: logger,
	}
	for _, item := range items {
		if _, dup := c.items[item.ID]; dup {
			continue
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	return c
}

// Item looks up a catalog entry by id.
func (c *Catalog) Item(id string) (entities.StoreItem, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns the catalog in its configured order.
func (c *Catalog) Items() []entities.StoreItem {
	out := make([]entities.StoreItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// ItemsByType filters the catalog to one item type.
func (c *Catalog) ItemsByType(t entities.StoreItemType) []entities.StoreItem {
	var out []entities.StoreItem
	for _, id := range c.order {
		if c.items[id].Type == t {
			out = append(out, c.items[id])
		}
	}
	return out
}

// Owned reports whether the player already owns the item. Consumables and
// exchanges are never owned; a range is owned only when every page in it is.
func (c *Catalog) Owned(item entities.StoreItem, player *entities.Player) bool {
	switch item.Type {
	case entities.ItemConsumable, entities.ItemExchange:
		return false
	case entities.ItemRanges, entities.ItemJuz:
		start, end, err := item.PageRange()
		if err != nil {
			c.logger.Warn("store item has malformed range", zap.String("item", item.ID), zap.Error(err))
			return false
		}
		for p := start; p <= end; p++ {
			if !player.HasItem(fmt.Sprintf("page_%d", p)) {
				return false
			}
		}
		return true
	default:
		return player.HasItem(item.ID)
	}
}

// CanAfford reports whether the player's balance covers the price. Exchange
// items cost xp, everything else diamonds.
func (c *Catalog) CanAfford(item entities.StoreItem, player *entities.Player) bool {
	if item.Type == entities.ItemExchange {
		return player.XP >= item.Price
	}
	return player.Diamonds >= item.Price
}

// Purchase debits the player, applies the item's effect, and publishes
// item_purchased. The mutation happens entirely in memory; the caller
// persists the player afterwards.
func (c *Catalog) Purchase(player *entities.Player, itemID string, bus *eventbus.Bus) (entities.StoreItem, error) {
	item, ok := c.items[itemID]
	if !ok {
		return entities.StoreItem{}, ErrItemNotFound
	}
	if c.Owned(item, player) {
		return item, ErrAlreadyOwned
	}
	if !c.CanAfford(item, player) {
		return item, ErrInsufficientFunds
	}

	switch item.Type {
	case entities.ItemExchange:
		player.XP -= item.Price
		player.Diamonds += item.Quantity()

	case entities.ItemConsumable:
		player.Diamonds -= item.Price
		if item.ID == "energy_stars_pack" {
			player.EnergyStars += item.Quantity()
		}

	case entities.ItemRanges, entities.ItemJuz:
		start, end, err := item.PageRange()
		if err != nil {
			return item, err
		}
		player.Diamonds -= item.Price
		for p := start; p <= end; p++ {
			player.AddItem(fmt.Sprintf("page_%d", p))
		}

	case entities.ItemPages, entities.ItemQari, entities.ItemThemes:
		player.Diamonds -= item.Price
		player.AddItem(item.ID)

	default:
		return item, fmt.Errorf("store item %s: unknown type %q", item.ID, item.Type)
	}

	c.logger.Info("item purchased",
		zap.Int64("player_id", player.ID),
		zap.String("item", item.ID),
		zap.String("type", string(item.Type)),
	)
	bus.Publish(eventbus.EventItemPurchased, eventbus.Payload{
		"itemId":   item.ID,
		"itemType": string(item.Type),
	})
	return item, nil
}
