// Package store persists card sets and their cards in SQLite.
// Test sessions are deliberately not stored: they live in memory for
// the lifetime of one interactive run.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pavelanni/flashquiz/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS card_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		set_id INTEGER NOT NULL,
		front TEXT NOT NULL,
		back TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (set_id) REFERENCES card_sets(id)
	);

	CREATE TABLE IF NOT EXISTS import_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateSet stores a card set.
func (s *Store) CreateSet(set model.CardSet) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO card_sets (name, description, created_at) VALUES (?, ?, ?)`,
		set.Name, set.Description, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSet returns a set by ID.
func (s *Store) GetSet(id int64) (model.CardSet, error) {
	var set model.CardSet
	err := s.db.QueryRow(
		`SELECT id, name, description, created_at FROM card_sets WHERE id = ?`, id,
	).Scan(&set.ID, &set.Name, &set.Description, &set.CreatedAt)
	return set, err
}

// ListSets returns all card sets, newest first.
func (s *Store) ListSets() ([]model.CardSet, error) {
	rows, err := s.db.Query(`SELECT id, name, description, created_at FROM card_sets ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sets []model.CardSet
	for rows.Next() {
		var set model.CardSet
		if err := rows.Scan(&set.ID, &set.Name, &set.Description, &set.CreatedAt); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// DeleteSet removes a set and its cards in one transaction.
func (s *Store) DeleteSet(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cards WHERE set_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM card_sets WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SetCount returns the number of card sets.
func (s *Store) SetCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM card_sets`).Scan(&count)
	return count, err
}

// AddCard inserts a card into a set. Position defaults to the end of
// the set when the caller leaves it at zero.
func (s *Store) AddCard(c model.Card) (int64, error) {
	position := c.Position
	if position == 0 {
		if err := s.db.QueryRow(
			`SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE set_id = ?`, c.SetID,
		).Scan(&position); err != nil {
			return 0, err
		}
	}
	res, err := s.db.Exec(
		`INSERT INTO cards (set_id, front, back, position, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.SetID, c.Front, c.Back, position, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListCards returns the cards of a set in position order.
func (s *Store) ListCards(setID int64) ([]model.Card, error) {
	rows, err := s.db.Query(
		`SELECT id, set_id, front, back, position, created_at FROM cards WHERE set_id = ? ORDER BY position, id`, setID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cards []model.Card
	for rows.Next() {
		var c model.Card
		if err := rows.Scan(&c.ID, &c.SetID, &c.Front, &c.Back, &c.Position, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// DeleteCard removes a single card.
func (s *Store) DeleteCard(id int64) error {
	_, err := s.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	return err
}

// CardCount returns the number of cards in a set.
func (s *Store) CardCount(setID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cards WHERE set_id = ?`, setID).Scan(&count)
	return count, err
}
