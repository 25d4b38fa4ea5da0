package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// StoreItemType groups store items by what purchasing them does.
type StoreItemType string

const (
	ItemPages      StoreItemType = "pages"      // unlocks a single content page
	ItemRanges     StoreItemType = "ranges"     // unlocks a contiguous page range
	ItemJuz        StoreItemType = "juz"        // a juz-sized page range
	ItemQari       StoreItemType = "qari"       // unlocks a recitation voice
	ItemThemes     StoreItemType = "themes"     // cosmetic, owned once
	ItemConsumable StoreItemType = "consumable" // e.g. energy star packs
	ItemExchange   StoreItemType = "exchange"   // converts xp into diamonds
)

// StoreItem is one purchasable catalog entry. Value is type-specific: a page
// range "start-end" for ranges/juz, a quantity for consumables and exchanges.
type StoreItem struct {
	ID          string
	Name        string
	Type        StoreItemType
	Price       int // diamonds, or xp for exchange items
	Value       string
	Icon        string
	Recommended bool
}

// PageRange parses the item's Value as an inclusive "start-end" page range.
func (i StoreItem) PageRange() (start, end int, err error) {
	parts := strings.SplitN(i.Value, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("item %s: malformed page range %q", i.ID, i.Value)
	}
	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("item %s: malformed page range %q", i.ID, i.Value)
	}
	end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || end < start {
		return 0, 0, fmt.Errorf("item %s: malformed page range %q", i.ID, i.Value)
	}
	return start, end, nil
}

// Quantity parses the item's Value as an integer amount.
func (i StoreItem) Quantity() int {
	n, err := strconv.Atoi(strings.TrimSpace(i.Value))
	if err != nil {
		return 0
	}
	return n
}
