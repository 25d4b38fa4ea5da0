// Package repository holds the file-backed content corpus. The mushaf text is
// static, so it ships as a JSON file instead of living in the database.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrInvalidPage  = errors.New("invalid page number")
)

// mushafPages is the page count of the standard mushaf.
const mushafPages = 604

// ContentRepository provides access to the ayah corpus, grouped by page.
type ContentRepository struct {
	pages map[int][]entities.Ayah
}

// NewContentRepository loads the corpus from a JSON file and indexes it by
// page. Ayahs within a page are kept in mushaf order.
func NewContentRepository(path string) (*ContentRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var wrapper struct {
		Ayahs []entities.Ayah `json:"ayahs"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal corpus JSON: %w", err)
	}
	if len(wrapper.Ayahs) == 0 {
		return nil, errors.New("corpus contains no ayahs")
	}

	pages := make(map[int][]entities.Ayah)
	for _, a := range wrapper.Ayahs {
		if a.Page < 1 || a.Page > mushafPages {
			return nil, fmt.Errorf("ayah %d: page %d out of range", a.Number, a.Page)
		}
		pages[a.Page] = append(pages[a.Page], a)
	}
	for p := range pages {
		sort.Slice(pages[p], func(i, j int) bool {
			return pages[p][i].Number < pages[p][j].Number
		})
	}

	return &ContentRepository{pages: pages}, nil
}

// Page retrieves the ayah pool of one page.
func (r *ContentRepository) Page(_ context.Context, pageNumber int) ([]entities.Ayah, error) {
	if pageNumber < 1 || pageNumber > mushafPages {
		return nil, ErrInvalidPage
	}

	pool, ok := r.pages[pageNumber]
	if !ok {
		return nil, ErrPageNotFound
	}
	return pool, nil
}

// Pages lists the page numbers present in the corpus, ascending.
func (r *ContentRepository) Pages() []int {
	out := make([]int, 0, len(r.pages))
	for p := range r.pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
