package store

import (
	"database/sql"
	"strconv"
	"testing"

	"github.com/pavelanni/flashquiz/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestSet(t *testing.T, s *Store, name string, cardCount int) int64 {
	t.Helper()
	setID, err := s.CreateSet(model.CardSet{Name: name, Description: "cards for " + name})
	if err != nil {
		t.Fatalf("insertTestSet: %v", err)
	}
	for i := 0; i < cardCount; i++ {
		_, err := s.AddCard(model.Card{
			SetID:    setID,
			Front:    "front " + strconv.Itoa(i+1),
			Back:     "back " + strconv.Itoa(i+1),
			Position: i + 1,
		})
		if err != nil {
			t.Fatalf("insertTestSet card %d: %v", i, err)
		}
	}
	return setID
}

func TestSetCRUD(t *testing.T) {
	s := newTestStore(t)

	// Empty DB should return zero count and empty list.
	count, err := s.SetCount()
	if err != nil {
		t.Fatalf("SetCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 sets, got %d", count)
	}

	list, err := s.ListSets()
	if err != nil {
		t.Fatalf("ListSets: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	// Insert and retrieve.
	id := insertTestSet(t, s, "Capitals", 0)
	set, err := s.GetSet(id)
	if err != nil {
		t.Fatalf("GetSet: %v", err)
	}
	if set.Name != "Capitals" {
		t.Errorf("expected name 'Capitals', got %q", set.Name)
	}
	if set.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	// Not found.
	_, err = s.GetSet(9999)
	if err != sql.ErrNoRows {
		t.Errorf("expected ErrNoRows, got %v", err)
	}

	// Newest first.
	insertTestSet(t, s, "Vocabulary", 0)
	list, err = s.ListSets()
	if err != nil {
		t.Fatalf("ListSets: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(list))
	}
	if list[0].Name != "Vocabulary" {
		t.Errorf("expected newest set first, got %q", list[0].Name)
	}
}

func TestCards(t *testing.T) {
	s := newTestStore(t)
	setID := insertTestSet(t, s, "Capitals", 3)

	cards, err := s.ListCards(setID)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	// Position order preserved.
	for i, c := range cards {
		if c.Position != i+1 {
			t.Errorf("card %d: expected position %d, got %d", i, i+1, c.Position)
		}
		if c.Front != "front "+strconv.Itoa(i+1) {
			t.Errorf("card %d: unexpected front %q", i, c.Front)
		}
	}

	count, err := s.CardCount(setID)
	if err != nil {
		t.Fatalf("CardCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected card count 3, got %d", count)
	}

	// Appending without an explicit position lands at the end.
	id, err := s.AddCard(model.Card{SetID: setID, Front: "front 4", Back: "back 4"})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	cards, _ = s.ListCards(setID)
	if len(cards) != 4 || cards[3].ID != id {
		t.Fatalf("expected appended card last, got %d cards", len(cards))
	}

	// DeleteCard.
	if err := s.DeleteCard(id); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	count, _ = s.CardCount(setID)
	if count != 3 {
		t.Errorf("expected card count 3 after delete, got %d", count)
	}
}

func TestDeleteSetCascades(t *testing.T) {
	s := newTestStore(t)
	setID := insertTestSet(t, s, "Doomed", 2)
	keepID := insertTestSet(t, s, "Kept", 1)

	if err := s.DeleteSet(setID); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}

	if _, err := s.GetSet(setID); err != sql.ErrNoRows {
		t.Errorf("expected deleted set to be gone, got %v", err)
	}
	count, err := s.CardCount(setID)
	if err != nil {
		t.Fatalf("CardCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected cards to be deleted with the set, got %d", count)
	}

	// Other sets untouched.
	count, _ = s.CardCount(keepID)
	if count != 1 {
		t.Errorf("expected other set's cards to remain, got %d", count)
	}
}

func TestImportedFileHash(t *testing.T) {
	s := newTestStore(t)

	// Missing file returns empty string.
	hash, err := s.GetImportedFileHash("/some/sets.json")
	if err != nil {
		t.Fatalf("GetImportedFileHash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash, got %q", hash)
	}

	// Set hash.
	if err := s.SetImportedFileHash("/some/sets.json", "abc123"); err != nil {
		t.Fatalf("SetImportedFileHash: %v", err)
	}
	hash, err = s.GetImportedFileHash("/some/sets.json")
	if err != nil {
		t.Fatalf("GetImportedFileHash: %v", err)
	}
	if hash != "abc123" {
		t.Errorf("expected 'abc123', got %q", hash)
	}

	// Update existing.
	if err := s.SetImportedFileHash("/some/sets.json", "def456"); err != nil {
		t.Fatalf("SetImportedFileHash update: %v", err)
	}
	hash, _ = s.GetImportedFileHash("/some/sets.json")
	if hash != "def456" {
		t.Errorf("expected 'def456', got %q", hash)
	}
}

func TestExportAllSets(t *testing.T) {
	s := newTestStore(t)
	insertTestSet(t, s, "Second", 1)
	insertTestSet(t, s, "First", 2)

	export, err := s.ExportAllSets()
	if err != nil {
		t.Fatalf("ExportAllSets: %v", err)
	}
	if export.NumSets != 2 || len(export.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", export.NumSets)
	}
	if export.ExportedAt.IsZero() {
		t.Error("expected exported_at to be set")
	}
	// ListSets order: newest first.
	if export.Sets[0].Name != "First" {
		t.Errorf("expected newest set first, got %q", export.Sets[0].Name)
	}
	if len(export.Sets[0].Cards) != 2 {
		t.Errorf("expected 2 cards in newest set, got %d", len(export.Sets[0].Cards))
	}
	if export.Sets[0].Cards[0].Front != "front 1" {
		t.Errorf("unexpected first card: %q", export.Sets[0].Cards[0].Front)
	}
}
