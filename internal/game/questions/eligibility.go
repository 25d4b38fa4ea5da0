package questions

import (
	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
)

// DefaultEligibility derives a progression gate for every catalog entry. It
// seeds the game-config table and serves as the fallback when the stored
// config is missing. Presentation mode decides the learning path: text
// questions stay on the basic path, audio prompts open with hafez, audio
// options with mutqen, merged clips with mujaz. Within a family, more
// options means a later level.
func DefaultEligibility(c *Catalog) []entities.QuestionTypeConfig {
	out := make([]entities.QuestionTypeConfig, 0, c.Len())
	for _, id := range c.IDs() {
		spec, _ := c.Get(id)
		out = append(out, entities.QuestionTypeConfig{
			ID:            id,
			RequiredLevel: requiredLevel(spec),
			RequiredPath:  requiredPath(spec.Present),
		})
	}
	return out
}

func requiredPath(p entities.Presentation) string {
	switch p {
	case entities.PresentAudioPrompt:
		return progression.PathHafez
	case entities.PresentAudioAll:
		return progression.PathMutqen
	case entities.PresentMergedAudio:
		return progression.PathMujaz
	default:
		return progression.PathBasic
	}
}

func requiredLevel(s Spec) int {
	base := 1
	switch s.Present {
	case entities.PresentAudioPrompt:
		base = 21
	case entities.PresentAudioAll:
		base = 41
	case entities.PresentMergedAudio:
		base = 61
	}

	switch s.ID {
	case "scrambled_words_medium":
		return base + 4
	case "scrambled_words_hard":
		return base + 11
	}
	if s.OptionCount > 3 {
		// Option counts 3-6 map to four difficulty steps within a path.
		return base + (s.OptionCount-3)*3
	}
	return base
}
