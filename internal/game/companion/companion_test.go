package companion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageFor(t *testing.T) {
	tr := NewTracker(DefaultStages())

	tests := []struct {
		level int
		want  string
	}{
		{1, "بذرة المعرفة"},
		{9, "بذرة المعرفة"},
		{10, "برعم النور"},
		{24, "برعم النور"},
		{25, "شتلة الإتقان"},
		{50, "شجرة الحكمة"},
		{75, "فانوس المعرفة"},
		{99, "فانوس المعرفة"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.StageFor(tt.level).Name, "level %d", tt.level)
	}
}

func TestCheckEvolution(t *testing.T) {
	tr := NewTracker(DefaultStages())

	// The first sighting records the stage without announcing an evolution.
	stage, evolved := tr.CheckEvolution(12)
	assert.Equal(t, "برعم النور", stage.Name)
	assert.False(t, evolved)

	// Same stage again: nothing to announce.
	_, evolved = tr.CheckEvolution(20)
	assert.False(t, evolved)

	// Crossing a stage boundary announces once.
	stage, evolved = tr.CheckEvolution(25)
	assert.True(t, evolved)
	assert.Equal(t, "شتلة الإتقان", stage.Name)

	_, evolved = tr.CheckEvolution(26)
	assert.False(t, evolved)
}
