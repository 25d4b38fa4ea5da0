package store

import (
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// DefaultItems seeds the store when no catalog rows exist yet. Page items
// beyond the starter page, the first juz as a bundle, extra recitation
// voices, a theme, the energy star pack, and a small xp exchange.
func DefaultItems() []entities.StoreItem {
	items := []entities.StoreItem{
		{ID: "juz_1", Name: "الجزء الأول كاملاً", Type: entities.ItemJuz, Price: 150, Value: "1-21", Icon: "📖", Recommended: true},
		{ID: "range_juz_amma", Name: "جزء عمّ", Type: entities.ItemRanges, Price: 120, Value: "582-604", Icon: "🕮"},
		{ID: "qari_ar.husary", Name: "الشيخ محمود خليل الحصري", Type: entities.ItemQari, Price: 80, Value: "ar.husary", Icon: "🎙️"},
		{ID: "qari_ar.minshawi", Name: "الشيخ محمد صديق المنشاوي", Type: entities.ItemQari, Price: 80, Value: "ar.minshawi", Icon: "🎙️"},
		{ID: "theme_night", Name: "المظهر الليلي", Type: entities.ItemThemes, Price: 40, Value: "night", Icon: "🌙"},
		{ID: "energy_stars_pack", Name: "حزمة نجوم الطاقة", Type: entities.ItemConsumable, Price: 30, Value: "3", Icon: "⭐"},
		{ID: "exchange_small", Name: "مبادلة خبرة بألماس", Type: entities.ItemExchange, Price: 200, Value: "10", Icon: "💱"},
	}

	// Individual early pages for players saving up one page at a time.
	for _, p := range []int{2, 3, 4, 5} {
		items = append(items, entities.StoreItem{
			ID:    fmt.Sprintf("page_%d", p),
			Name:  fmt.Sprintf("صفحة %d", p),
			Type:  entities.ItemPages,
			Price: 10,
			Icon:  "📄",
		})
	}
	return items
}
