// Package questions holds the closed catalog of parametrized question
// generators. Each generator is a pure function over a content pool (plus an
// optional foreign pool for intruder questions) that either produces a fully
// prepared question descriptor or reports absence when the pool cannot
// satisfy its structural constraints.
package questions

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// Input is everything a generator may draw on.
type Input struct {
	Pool      []entities.Ayah // the page's ayahs, in mushaf order
	Intruders []entities.Ayah // ayahs from a foreign page, may be empty
	Qari      string          // recitation voice for audio URLs
	Rng       *rand.Rand
}

// Generator produces a question or nil when the pool is structurally too
// small (fewer atoms than options, no ayah long enough, ...). Generators
// never fail any other way.
type Generator func(in Input) *entities.Question

const audioBaseURL = "https://cdn.islamic.network/quran/audio/128"

func audioURL(qari string, ayahNumber int) string {
	return fmt.Sprintf("%s/%s/%d.mp3", audioBaseURL, qari, ayahNumber)
}

// sampleExcluding draws count distinct ayahs from the pool, skipping the
// given ayah numbers. Returns nil when fewer than count candidates exist.
func sampleExcluding(rng *rand.Rand, pool []entities.Ayah, count int, exclude ...int) []entities.Ayah {
	excluded := make(map[int]bool, len(exclude))
	for _, n := range exclude {
		excluded[n] = true
	}

	candidates := make([]entities.Ayah, 0, len(pool))
	for _, a := range pool {
		if !excluded[a.Number] {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) < count {
		return nil
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:count]
}

func shuffleOptions(rng *rand.Rand, opts []entities.Option) {
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
}

// ayahOption builds a choice option for an ayah, attaching audio when the
// options themselves are audio cues.
func ayahOption(a entities.Ayah, correct bool, present entities.Presentation, qari string) entities.Option {
	opt := entities.Option{AyahNumber: a.Number, Label: a.Text, Correct: correct}
	if present == entities.PresentAudioAll || present == entities.PresentMergedAudio {
		opt.Audio = audioURL(qari, a.Number)
	}
	return opt
}

// applyPromptAyah fills the prompt side of a question from the ayah being
// asked about, as text or as a recitation clip.
func applyPromptAyah(q *entities.Question, a entities.Ayah, present entities.Presentation, qari string) {
	switch present {
	case entities.PresentAudioPrompt, entities.PresentAudioAll:
		q.PromptAudio = audioURL(qari, a.Number)
	default:
		q.PromptText = a.Text
	}
}

// chooseNeighbor covers the "choose the next ayah" and "choose the previous
// ayah" families. direction is +1 for next, -1 for previous.
func chooseNeighbor(typeID string, optionCount, direction int, present entities.Presentation) Generator {
	return func(in Input) *entities.Question {
		if len(in.Pool) < optionCount+1 {
			return nil
		}

		var idx int
		if direction > 0 {
			idx = in.Rng.Intn(len(in.Pool) - 1)
		} else {
			idx = in.Rng.Intn(len(in.Pool)-1) + 1
		}
		questionAyah := in.Pool[idx]
		correct := in.Pool[idx+direction]

		wrong := sampleExcluding(in.Rng, in.Pool, optionCount-1, questionAyah.Number, correct.Number)
		if wrong == nil {
			return nil
		}

		options := make([]entities.Option, 0, optionCount)
		options = append(options, ayahOption(correct, true, present, in.Qari))
		for _, w := range wrong {
			options = append(options, ayahOption(w, false, present, in.Qari))
		}
		shuffleOptions(in.Rng, options)

		prompt := "ما هي الآية التالية لهذه الآية؟"
		if direction < 0 {
			prompt = "ما هي الآية السابقة لهذه الآية؟"
		}

		q := &entities.Question{
			TypeID:        typeID,
			Prompt:        prompt,
			Presentation:  present,
			Interaction:   entities.InteractionChoice,
			Options:       options,
			CorrectAnswer: correct.Text,
		}
		applyPromptAyah(q, questionAyah, present, in.Qari)
		return q
	}
}

// findIntruder covers the "which ayah is not from this page" family,
// including the merged-audio variant. Requires a non-empty foreign pool.
func findIntruder(typeID string, optionCount int, present entities.Presentation) Generator {
	return func(in Input) *entities.Question {
		if len(in.Pool) < optionCount-1 || len(in.Intruders) == 0 {
			return nil
		}

		intruder := in.Intruders[in.Rng.Intn(len(in.Intruders))]
		own := sampleExcluding(in.Rng, in.Pool, optionCount-1)
		if own == nil {
			return nil
		}

		options := make([]entities.Option, 0, optionCount)
		options = append(options, ayahOption(intruder, true, present, in.Qari))
		for _, a := range own {
			options = append(options, ayahOption(a, false, present, in.Qari))
		}
		shuffleOptions(in.Rng, options)

		return &entities.Question{
			TypeID:        typeID,
			Prompt:        "إحدى الآيات التالية ليست من هذه الصفحة. أيها هي؟",
			Presentation:  present,
			Interaction:   entities.InteractionChoice,
			Options:       options,
			CorrectAnswer: intruder.Text,
		}
	}
}

// completeAyah asks for the missing trailing words of an ayah.
func completeAyah(typeID string, wordCount, optionCount int) Generator {
	return func(in Input) *entities.Question {
		var valid []entities.Ayah
		for _, a := range in.Pool {
			if a.WordCount() > wordCount {
				valid = append(valid, a)
			}
		}
		if len(valid) == 0 {
			return nil
		}

		questionAyah := valid[in.Rng.Intn(len(valid))]
		words := strings.Fields(questionAyah.Text)
		partial := strings.Join(words[:len(words)-wordCount], " ")
		correctEnding := strings.Join(words[len(words)-wordCount:], " ")

		distractors := sampleExcluding(in.Rng, in.Pool, optionCount-1, questionAyah.Number)
		if distractors == nil {
			return nil
		}

		options := make([]entities.Option, 0, optionCount)
		options = append(options, entities.Option{
			AyahNumber: questionAyah.Number,
			Label:      correctEnding,
			Correct:    true,
		})
		for _, d := range distractors {
			options = append(options, entities.Option{
				AyahNumber: d.Number,
				Label:      lastWords(d.Text, wordCount),
			})
		}
		shuffleOptions(in.Rng, options)

		return &entities.Question{
			TypeID:        typeID,
			Prompt:        "أكمل الآية التالية:",
			PromptText:    partial + " ...",
			Presentation:  entities.PresentText,
			Interaction:   entities.InteractionChoice,
			Options:       options,
			CorrectAnswer: correctEnding,
		}
	}
}

func lastWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[len(words)-n:], " ")
}

// scrambledWords asks the player to rebuild an ayah from its shuffled words.
// Difficulty tiers are word-count buckets.
func scrambledWords(typeID string, minWords, maxWords int) Generator {
	return func(in Input) *entities.Question {
		var valid []entities.Ayah
		for _, a := range in.Pool {
			wc := a.WordCount()
			if wc >= minWords && (maxWords == 0 || wc <= maxWords) {
				valid = append(valid, a)
			}
		}
		if len(valid) == 0 {
			return nil
		}

		questionAyah := valid[in.Rng.Intn(len(valid))]
		words := strings.Fields(questionAyah.Text)

		arrangement := make([]entities.Option, len(words))
		correctOrder := make([]int, len(words))
		for i, w := range words {
			arrangement[i] = entities.Option{AyahNumber: i, Label: w}
			correctOrder[i] = i
		}
		shuffleOptions(in.Rng, arrangement)

		return &entities.Question{
			TypeID:        typeID,
			Prompt:        "رتب الكلمات التالية لتكوين آية صحيحة:",
			Presentation:  entities.PresentText,
			Interaction:   entities.InteractionArrange,
			Arrangement:   arrangement,
			CorrectOrder:  correctOrder,
			CorrectAnswer: questionAyah.Text,
		}
	}
}

// orderSequence asks the player to restore the mushaf order of a consecutive
// run of ayahs.
func orderSequence(typeID string, optionCount int, present entities.Presentation) Generator {
	return func(in Input) *entities.Question {
		if len(in.Pool) < optionCount {
			return nil
		}

		start := in.Rng.Intn(len(in.Pool) - optionCount + 1)
		run := in.Pool[start : start+optionCount]

		arrangement := make([]entities.Option, 0, optionCount)
		correctOrder := make([]int, 0, optionCount)
		for _, a := range run {
			arrangement = append(arrangement, ayahOption(a, false, present, in.Qari))
			correctOrder = append(correctOrder, a.Number)
		}
		shuffleOptions(in.Rng, arrangement)

		return &entities.Question{
			TypeID:        typeID,
			Prompt:        "رتب الآيات التالية حسب تسلسلها الصحيح في المصحف.",
			Presentation:  present,
			Interaction:   entities.InteractionArrange,
			Arrangement:   arrangement,
			CorrectOrder:  correctOrder,
			CorrectAnswer: "الترتيب الصحيح هو ترتيب المصحف.",
		}
	}
}

// findBoundary asks for the first or last ayah of the page.
func findBoundary(typeID string, optionCount int, first bool, present entities.Presentation) Generator {
	return func(in Input) *entities.Question {
		if len(in.Pool) < optionCount {
			return nil
		}

		correct := in.Pool[len(in.Pool)-1]
		prompt := "ما هي آخر آية في هذه الصفحة؟"
		if first {
			correct = in.Pool[0]
			prompt = "ما هي أول آية في هذه الصفحة؟"
		}

		wrong := sampleExcluding(in.Rng, in.Pool, optionCount-1, correct.Number)
		if wrong == nil {
			return nil
		}

		options := make([]entities.Option, 0, optionCount)
		options = append(options, ayahOption(correct, true, present, in.Qari))
		for _, w := range wrong {
			options = append(options, ayahOption(w, false, present, in.Qari))
		}
		shuffleOptions(in.Rng, options)

		return &entities.Question{
			TypeID:        typeID,
			Prompt:        prompt,
			Presentation:  present,
			Interaction:   entities.InteractionChoice,
			Options:       options,
			CorrectAnswer: correct.Text,
		}
	}
}

// locatePosition asks for the 1-based position of an ayah within the page.
func locatePosition(typeID string, optionCount int, present entities.Presentation) Generator {
	return func(in Input) *entities.Question {
		if len(in.Pool) < optionCount {
			return nil
		}

		idx := in.Rng.Intn(len(in.Pool))
		questionAyah := in.Pool[idx]
		correctPos := idx + 1

		positions := map[int]bool{correctPos: true}
		for len(positions) < optionCount {
			positions[in.Rng.Intn(len(in.Pool))+1] = true
		}

		options := make([]entities.Option, 0, optionCount)
		for pos := range positions {
			options = append(options, entities.Option{
				Label:   fmt.Sprintf("%d", pos),
				Correct: pos == correctPos,
			})
		}
		shuffleOptions(in.Rng, options)

		q := &entities.Question{
			TypeID:        typeID,
			Prompt:        "ما هو الترتيب الرقمي لهذه الآية في الصفحة؟",
			Presentation:  present,
			Interaction:   entities.InteractionChoice,
			Options:       options,
			CorrectAnswer: fmt.Sprintf("الترتيب الصحيح هو %d", correctPos),
		}
		applyPromptAyah(q, questionAyah, present, in.Qari)
		return q
	}
}
