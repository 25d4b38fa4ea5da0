package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestContentRepository(t *testing.T) {
	path := writeCorpus(t, `{"ayahs": [
		{"number": 8, "text": "الآية الثامنة", "page": 2, "surah": "البقرة"},
		{"number": 6, "text": "الآية السادسة", "page": 2, "surah": "البقرة"},
		{"number": 7, "text": "الآية السابعة", "page": 2, "surah": "البقرة"},
		{"number": 1, "text": "الفاتحة", "page": 1, "surah": "الفاتحة"}
	]}`)

	repo, err := NewContentRepository(path)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, repo.Pages())

	// Pages come back in mushaf order regardless of file order.
	pool, err := repo.Page(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pool, 3)
	assert.Equal(t, 6, pool[0].Number)
	assert.Equal(t, 7, pool[1].Number)
	assert.Equal(t, 8, pool[2].Number)
	assert.Equal(t, "البقرة", pool[0].Surah)

	_, err = repo.Page(context.Background(), 3)
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = repo.Page(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = repo.Page(context.Background(), 605)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestContentRepositoryRejectsBadInput(t *testing.T) {
	_, err := NewContentRepository(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = NewContentRepository(writeCorpus(t, `{"ayahs": []}`))
	assert.Error(t, err)

	_, err = NewContentRepository(writeCorpus(t, `{"ayahs": [{"number": 1, "text": "x", "page": 700}]}`))
	assert.Error(t, err)
}
