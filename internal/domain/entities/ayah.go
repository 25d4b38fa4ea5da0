package entities

// Ayah is the atomic content unit generators operate on: a verse with a
// stable global number and its text, grouped into mushaf pages.
type Ayah struct {
	Number int    `json:"number"` // global ayah number, stable across the corpus
	Text   string `json:"text"`
	Page   int    `json:"page"`   // mushaf page this ayah belongs to (1-604)
	Surah  string `json:"surah"`  // surah name, presentation only
}

// WordCount returns the number of whitespace-separated words in the ayah
// text. Used by generators with length constraints.
func (a Ayah) WordCount() int {
	count := 0
	inWord := false
	for _, r := range a.Text {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}
