package entities

// Interaction is how the shell should collect the player's answer.
type Interaction string

const (
	InteractionChoice  Interaction = "choice"  // pick one option
	InteractionArrange Interaction = "arrange" // tap items into the right order
)

// Presentation is the rendering hint for a question or its options. Audio
// variants carry recitation URLs built from the selected qari; the engine
// attaches the hint and the shell decides how to play it.
type Presentation string

const (
	PresentText        Presentation = "text"
	PresentAudioPrompt Presentation = "audio_prompt"  // the prompt ayah is played, options are text
	PresentAudioAll    Presentation = "audio_options" // prompt and options are all audio cues
	PresentMergedAudio Presentation = "merged_audio"  // options played back-to-back as one clip
)

// QuestionTypeConfig gates a catalog generator behind player progression.
// Loaded from the game-config repository and matched to the catalog by id.
type QuestionTypeConfig struct {
	ID            string
	RequiredLevel int
	RequiredPath  string
}

// Option is one multiple-choice answer.
type Option struct {
	AyahNumber int    // ayah the option represents, 0 for synthetic options
	Label      string // display text (position number, ending words, ...)
	Audio      string // recitation URL when the option is an audio cue
	Correct    bool
}

// Question is a fully prepared question descriptor handed to the
// presentation shell. It is pure data: the shell renders it, collects an
// answer, and reports the outcome back to the quiz session.
type Question struct {
	TypeID       string // catalog id of the generator that produced it
	Prompt       string // instruction text shown to the player
	PromptText   string // ayah text the question is about, empty for audio prompts
	PromptAudio  string // recitation URL for audio prompts
	Presentation Presentation
	Interaction  Interaction

	// Choice questions.
	Options []Option

	// Arrangement questions: items in shuffled display order and the correct
	// sequence key (ayah numbers, or word positions for scrambles).
	Arrangement  []Option
	CorrectOrder []int

	CorrectAnswer string // display text of the correct answer, for feedback
}

// CorrectOption returns the correct choice, if any.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}
