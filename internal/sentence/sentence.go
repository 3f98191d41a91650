// Package sentence reads example sentences and their translations from a
// sentence corpus database.
package sentence

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Sentence is one corpus sentence in the learning language together with its
// translations into the base language.
type Sentence struct {
	ID           int64  `db:"id"`
	Text         string `db:"sentence"`
	Translations []string
}

// Repository reads one sentence corpus database. A nil repository behaves as
// an empty corpus, which lets callers treat a missing database file as no
// example sentences instead of an error.
type Repository struct {
	db *sqlx.DB
}

// Open opens a sentence corpus database, creating the file when it does not
// exist yet.
func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", path, err)
	}
	return &Repository{db: db}, nil
}

// OpenIfExists opens a sentence corpus database, or returns a nil repository
// when the file is absent.
func OpenIfExists(path string) (*Repository, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Open(path)
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}

// Init creates the corpus schema. Word forms in the words table are expected
// lowercased so lookups are case-insensitive.
func (r *Repository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sentences (
			id INTEGER PRIMARY KEY,
			sentence TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS words (
			word TEXT NOT NULL,
			sentence_id INTEGER NOT NULL REFERENCES sentences (id)
		);
		CREATE INDEX IF NOT EXISTS words_word ON words (word);
		CREATE TABLE IF NOT EXISTS translations (
			sentence_id INTEGER NOT NULL REFERENCES sentences (id),
			sentence TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS translations_sentence_id ON translations (sentence_id);
	`)
	if err != nil {
		return fmt.Errorf("db.ExecContext() > %w", err)
	}
	return nil
}

// Add stores a sentence, its word forms and its translations.
func (r *Repository) Add(ctx context.Context, sentence Sentence, words []string) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO sentences (id, sentence) VALUES (?, ?)",
		sentence.ID, sentence.Text,
	); err != nil {
		return fmt.Errorf("insert sentence %d > %w", sentence.ID, err)
	}
	for _, word := range words {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO words (word, sentence_id) VALUES (?, ?)",
			word, sentence.ID,
		); err != nil {
			return fmt.Errorf("insert word %q > %w", word, err)
		}
	}
	for _, translation := range sentence.Translations {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO translations (sentence_id, sentence) VALUES (?, ?)",
			sentence.ID, translation,
		); err != nil {
			return fmt.Errorf("insert translation for %d > %w", sentence.ID, err)
		}
	}
	return nil
}

// FilterByWord returns up to limit sentences containing the word, shortest
// first, skipping the excluded sentence identifiers. A maxLength of zero
// means no length bound.
func (r *Repository) FilterByWord(ctx context.Context, word string, excludedIDs []int64, maxLength, limit int) ([]Sentence, error) {
	if r == nil {
		return nil, nil
	}

	query := `SELECT s.id, s.sentence
		FROM words AS w
		JOIN sentences AS s ON s.id = w.sentence_id
		WHERE w.word = ?`
	args := []any{word}
	if len(excludedIDs) > 0 {
		query += " AND s.id NOT IN (?)"
		args = append(args, excludedIDs)
	}
	if maxLength > 0 {
		query += " AND length(s.sentence) <= ?"
		args = append(args, maxLength)
	}
	query += " ORDER BY length(s.sentence), s.id LIMIT ?"
	args = append(args, limit)

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var sentences []Sentence
	if err := r.db.SelectContext(ctx, &sentences, r.db.Rebind(query), expanded...); err != nil {
		return nil, fmt.Errorf("db.SelectContext() > %w", err)
	}
	if len(sentences) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(sentences))
	for _, sentence := range sentences {
		ids = append(ids, sentence.ID)
	}
	query, expanded, err = sqlx.In(
		"SELECT sentence_id, sentence FROM translations WHERE sentence_id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var translations []struct {
		SentenceID int64  `db:"sentence_id"`
		Sentence   string `db:"sentence"`
	}
	if err := r.db.SelectContext(ctx, &translations, r.db.Rebind(query), expanded...); err != nil {
		return nil, fmt.Errorf("db.SelectContext() > %w", err)
	}
	bySentence := make(map[int64][]string)
	for _, translation := range translations {
		bySentence[translation.SentenceID] = append(bySentence[translation.SentenceID], translation.Sentence)
	}
	for i := range sentences {
		sentences[i].Translations = bySentence[sentences[i].ID]
	}
	return sentences, nil
}
