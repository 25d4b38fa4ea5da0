package questions

import (
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// Spec is one catalog entry: a stable id plus the generator bound to its
// parameters. NeedsIntruder marks families that require a foreign-page pool.
type Spec struct {
	ID            string
	Present       entities.Presentation
	OptionCount   int // 0 for scrambles, which arrange whole ayahs
	NeedsIntruder bool
	Generate      Generator
}

// Catalog is the closed registry of question generators. Ids are stable and
// stored in player history and eligibility config, so entries are only ever
// added, never renamed.
type Catalog struct {
	specs map[string]Spec
	order []string
}

// NewCatalog builds the full registry.
func NewCatalog() *Catalog {
	c := &Catalog{specs: make(map[string]Spec)}

	// Neighbor families: choose the next / previous ayah, in three
	// presentation modes and option counts 3-6.
	neighborModes := []struct {
		suffix  string
		present entities.Presentation
	}{
		{"text", entities.PresentText},
		{"audio_text", entities.PresentAudioPrompt},
		{"audio_audio", entities.PresentAudioAll},
	}
	for _, m := range neighborModes {
		for n := 3; n <= 6; n++ {
			id := fmt.Sprintf("choose_next_%s_%d", m.suffix, n)
			c.add(Spec{ID: id, Present: m.present, OptionCount: n, Generate: chooseNeighbor(id, n, +1, m.present)})

			id = fmt.Sprintf("choose_prev_%s_%d", m.suffix, n)
			c.add(Spec{ID: id, Present: m.present, OptionCount: n, Generate: chooseNeighbor(id, n, -1, m.present)})
		}
	}

	// Intruder families, including the merged-audio variant where all
	// options play back-to-back as a single clip.
	for n := 3; n <= 6; n++ {
		id := fmt.Sprintf("find_intruder_text_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, NeedsIntruder: true, Generate: findIntruder(id, n, entities.PresentText)})

		id = fmt.Sprintf("find_intruder_audio_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentAudioAll, OptionCount: n, NeedsIntruder: true, Generate: findIntruder(id, n, entities.PresentAudioAll)})

		id = fmt.Sprintf("find_intruder_merged_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentMergedAudio, OptionCount: n, NeedsIntruder: true, Generate: findIntruder(id, n, entities.PresentMergedAudio)})
	}

	// Completion: supply the missing trailing words.
	for n := 4; n <= 6; n++ {
		id := fmt.Sprintf("complete_ayah_two_words_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: completeAyah(id, 2, n)})

		id = fmt.Sprintf("complete_ayah_three_words_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: completeAyah(id, 3, n)})
	}

	// Scrambles, bucketed by ayah length.
	c.add(Spec{ID: "scrambled_words_easy", Present: entities.PresentText, Generate: scrambledWords("scrambled_words_easy", 4, 7)})
	c.add(Spec{ID: "scrambled_words_medium", Present: entities.PresentText, Generate: scrambledWords("scrambled_words_medium", 8, 12)})
	c.add(Spec{ID: "scrambled_words_hard", Present: entities.PresentText, Generate: scrambledWords("scrambled_words_hard", 13, 0)})

	// Sequencing: restore mushaf order of a consecutive run.
	for n := 3; n <= 6; n++ {
		id := fmt.Sprintf("order_sequence_text_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: orderSequence(id, n, entities.PresentText)})

		id = fmt.Sprintf("order_sequence_audio_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentAudioAll, OptionCount: n, Generate: orderSequence(id, n, entities.PresentAudioAll)})
	}

	// Boundaries: first / last ayah of the page.
	for n := 3; n <= 6; n++ {
		id := fmt.Sprintf("find_boundary_first_text_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: findBoundary(id, n, true, entities.PresentText)})

		id = fmt.Sprintf("find_boundary_last_text_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: findBoundary(id, n, false, entities.PresentText)})

		id = fmt.Sprintf("find_boundary_first_audio_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentAudioAll, OptionCount: n, Generate: findBoundary(id, n, true, entities.PresentAudioAll)})

		id = fmt.Sprintf("find_boundary_last_audio_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentAudioAll, OptionCount: n, Generate: findBoundary(id, n, false, entities.PresentAudioAll)})
	}

	// Positioning: where in the page does the ayah sit.
	for n := 3; n <= 6; n++ {
		id := fmt.Sprintf("locate_position_text_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentText, OptionCount: n, Generate: locatePosition(id, n, entities.PresentText)})

		id = fmt.Sprintf("locate_position_audio_%d", n)
		c.add(Spec{ID: id, Present: entities.PresentAudioPrompt, OptionCount: n, Generate: locatePosition(id, n, entities.PresentAudioPrompt)})
	}

	return c
}

func (c *Catalog) add(s Spec) {
	if _, exists := c.specs[s.ID]; exists {
		panic("questions: duplicate catalog id " + s.ID)
	}
	c.specs[s.ID] = s
	c.order = append(c.order, s.ID)
}

// Get looks up a catalog entry by id.
func (c *Catalog) Get(id string) (Spec, bool) {
	s, ok := c.specs[id]
	return s, ok
}

// IDs returns all catalog ids in registration order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports the number of registered generators.
func (c *Catalog) Len() int { return len(c.order) }
