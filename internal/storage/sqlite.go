// Package storage provides SQLite-backed persistence for the catalog
// crawler: category and product repositories that assign row identity on
// insert, plus the administrative reset operations.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"catacrawl/internal/crawler"
	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the crawler.Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ crawler.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) the database at dbPath
// and ensures the schema exists. An unreachable store is a fatal
// condition: the caller must abort before any traversal begins.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection prevents lock conflicts; the walker is the only writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertCategory inserts a category row and assigns cat.ID from the
// autoincrement sequence. Each category is inserted exactly once; rows
// are never updated by the crawl.
func (s *SQLiteStore) InsertCategory(cat *crawler.Category) error {
	var parentID sql.NullInt64
	if cat.ParentID != nil {
		parentID = sql.NullInt64{Int64: *cat.ParentID, Valid: true}
	}

	err := s.db.QueryRow(`
		INSERT INTO categories (name, url, parent_id)
		VALUES (?, ?, ?)
		RETURNING id
	`, cat.Name, cat.URL, parentID).Scan(&cat.ID)

	if err != nil {
		return fmt.Errorf("failed to insert category %q: %w", cat.Name, err)
	}
	return nil
}

// InsertProduct inserts a product row and assigns p.ID. p.CategoryID
// must reference an already-persisted category.
func (s *SQLiteStore) InsertProduct(p *crawler.Product) error {
	err := s.db.QueryRow(`
		INSERT INTO products (name, brand, price, is_available, cat_id, review_count, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, p.Name, p.Brand, p.Price, boolToInt(p.Available), p.CategoryID, p.ReviewCount, p.URL).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
	}
	return nil
}

// ListRootCategories returns categories with no parent, in insertion
// order (menu order, since roots are persisted in document order).
func (s *SQLiteStore) ListRootCategories() ([]crawler.Category, error) {
	return s.listCategories(`
		SELECT id, name, url, parent_id FROM categories
		WHERE parent_id IS NULL
		ORDER BY id ASC
	`)
}

// ListLeafCategories returns categories no other category references as
// parent. These are the pages the product phase collects from.
func (s *SQLiteStore) ListLeafCategories() ([]crawler.Category, error) {
	return s.listCategories(`
		SELECT c.id, c.name, c.url, c.parent_id FROM categories c
		WHERE NOT EXISTS (SELECT 1 FROM categories child WHERE child.parent_id = c.id)
		ORDER BY c.id ASC
	`)
}

func (s *SQLiteStore) listCategories(query string, args ...any) ([]crawler.Category, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cats []crawler.Category
	for rows.Next() {
		var cat crawler.Category
		var parentID sql.NullInt64
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.URL, &parentID); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		if parentID.Valid {
			id := parentID.Int64
			cat.ParentID = &id
		}
		cats = append(cats, cat)
	}

	return cats, rows.Err()
}

// CountCategories returns the number of persisted categories.
func (s *SQLiteStore) CountCategories() (int, error) {
	return s.count("categories")
}

// CountProducts returns the number of persisted products.
func (s *SQLiteStore) CountProducts() (int, error) {
	return s.count("products")
}

func (s *SQLiteStore) count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// DeleteAllCategories wipes the categories table. Administrative reset,
// not part of crawling; products must be deleted first to satisfy the
// foreign key.
func (s *SQLiteStore) DeleteAllCategories() error {
	if _, err := s.db.Exec("DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}

// DeleteAllProducts wipes the products table.
func (s *SQLiteStore) DeleteAllProducts() error {
	if _, err := s.db.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
