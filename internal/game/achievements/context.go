package achievements

import (
	"strings"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
)

// buildContext produces the flat evaluation context a rule's target property
// is resolved against: first the coercible event payload fields, then the
// player-derived computed fields. Computed fields overwrite same-named
// payload fields; this precedence mirrors the original rule set and is
// documented in DESIGN.md as a potential latent footgun, not changed here.
func buildContext(
	payload eventbus.Payload,
	player *entities.Player,
	calc *progression.Calculator,
) map[string]float64 {
	ctx := make(map[string]float64, len(payload)+8)

	// Defaults for payload-borne fields rules rely on.
	ctx["isPerfect"] = 0
	ctx["newLevel"] = 0

	for k, v := range payload {
		if f, ok := toFloat(v); ok {
			ctx[k] = f
		}
	}

	ctx["xp"] = float64(player.XP)
	ctx["diamonds"] = float64(player.Diamonds)
	ctx["level"] = float64(calc.LevelInfo(player.XP).Level)
	ctx["inventorySize"] = float64(len(player.Inventory))
	ctx["totalQuizzes"] = float64(player.TotalQuizzesCompleted)
	ctx["qariCount"] = float64(countWithPrefix(player.Inventory, "qari_"))

	return ctx
}

// toFloat coerces payload values into the numeric domain comparators run in.
// Booleans map to 1/0; anything non-numeric is treated as absent.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func countWithPrefix(items []string, prefix string) int {
	n := 0
	for _, it := range items {
		if strings.HasPrefix(it, prefix) {
			n++
		}
	}
	return n
}
