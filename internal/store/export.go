package store

import (
	"fmt"
	"time"

	"github.com/pavelanni/flashquiz/internal/model"
)

// ExportAllSets builds export-ready structures for every card set.
func (s *Store) ExportAllSets() (model.SetExportFile, error) {
	sets, err := s.ListSets()
	if err != nil {
		return model.SetExportFile{}, fmt.Errorf("list sets: %w", err)
	}

	var exported []model.SetExport
	for _, set := range sets {
		cards, err := s.ListCards(set.ID)
		if err != nil {
			return model.SetExportFile{}, fmt.Errorf("list cards for set %d: %w", set.ID, err)
		}

		var cardExports []model.CardExport
		for _, c := range cards {
			cardExports = append(cardExports, model.CardExport{
				Front:    c.Front,
				Back:     c.Back,
				Position: c.Position,
			})
		}

		exported = append(exported, model.SetExport{
			Name:        set.Name,
			Description: set.Description,
			CreatedAt:   set.CreatedAt,
			Cards:       cardExports,
		})
	}

	return model.SetExportFile{
		ExportedAt: time.Now(),
		NumSets:    len(exported),
		Sets:       exported,
	}, nil
}
