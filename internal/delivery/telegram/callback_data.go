package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz    = "quiz"
	actionAnswer  = "ans"
	actionWord    = "word"
	actionStore   = "store"
	actionSkills  = "skills"
	actionQuests  = "quests"
	actionDuel    = "duel"
	actionProfile = "profile"
	actionReview  = "review"
	actionMenu    = "menu"
)

// Quiz sub-actions.
const (
	quizStart = "start"
)

// Store sub-actions.
const (
	storeMenu = "menu"
	storeBuy  = "buy"
)

// Skills sub-actions.
const (
	skillsMenu   = "menu"
	skillsUnlock = "unlock"
)

// Quests sub-actions.
const (
	questsMenu  = "menu"
	questsClaim = "claim"
)

// Word sub-actions for arrangement questions.
const (
	wordReset = "reset"
)

// Duel sub-actions.
const (
	duelAccept = "accept"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizStartCallback builds callback data for starting a quiz on a page.
func buildQuizStartCallback(page int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart, strconv.Itoa(page)},
	}.encode()
}

// buildAnswerCallback builds callback data for answering a choice question.
func buildAnswerCallback(optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(optionIndex)},
	}.encode()
}

// buildWordCallback builds callback data for picking a word in an
// arrangement question.
func buildWordCallback(wordIndex int) string {
	return callbackData{
		Action: actionWord,
		Params: []string{strconv.Itoa(wordIndex)},
	}.encode()
}

func buildWordResetCallback() string {
	return callbackData{Action: actionWord, Params: []string{wordReset}}.encode()
}

func buildStoreMenuCallback() string {
	return callbackData{Action: actionStore, Params: []string{storeMenu}}.encode()
}

func buildStoreBuyCallback(itemID string) string {
	return callbackData{
		Action: actionStore,
		Params: []string{storeBuy, itemID},
	}.encode()
}

func buildSkillsMenuCallback() string {
	return callbackData{Action: actionSkills, Params: []string{skillsMenu}}.encode()
}

func buildSkillUnlockCallback(skillID string) string {
	return callbackData{
		Action: actionSkills,
		Params: []string{skillsUnlock, skillID},
	}.encode()
}

func buildQuestsMenuCallback() string {
	return callbackData{Action: actionQuests, Params: []string{questsMenu}}.encode()
}

func buildQuestClaimCallback(questID int64) string {
	return callbackData{
		Action: actionQuests,
		Params: []string{questsClaim, strconv.FormatInt(questID, 10)},
	}.encode()
}

func buildDuelAcceptCallback(duelID int64, page int) string {
	return callbackData{
		Action: actionDuel,
		Params: []string{duelAccept, strconv.FormatInt(duelID, 10), strconv.Itoa(page)},
	}.encode()
}

func buildProfileCallback() string {
	return actionProfile
}

func buildReviewCallback() string {
	return actionReview
}

func buildMenuCallback() string {
	return actionMenu
}
