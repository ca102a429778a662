package storage

import (
	"path/filepath"
	"testing"

	"catacrawl/internal/crawler"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbFile := filepath.Join(t.TempDir(), "test_catalog.db")
	store, err := NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertCategoryAssignsIDs(t *testing.T) {
	store := newTestStore(t)

	root := crawler.Category{Name: "Books", URL: "https://example.com/books"}
	if err := store.InsertCategory(&root); err != nil {
		t.Fatalf("Failed to insert root: %v", err)
	}
	if root.ID == 0 {
		t.Fatal("Expected root to receive an id on insert")
	}

	child := crawler.Category{Name: "Fiction", URL: "https://example.com/books/fiction", ParentID: &root.ID}
	if err := store.InsertCategory(&child); err != nil {
		t.Fatalf("Failed to insert child: %v", err)
	}
	if child.ID <= root.ID {
		t.Errorf("Expected child id (%d) after parent id (%d)", child.ID, root.ID)
	}
}

func TestInsertProductLinksCategory(t *testing.T) {
	store := newTestStore(t)

	cat := crawler.Category{Name: "Fiction", URL: "https://example.com/fiction"}
	if err := store.InsertCategory(&cat); err != nil {
		t.Fatalf("Failed to insert category: %v", err)
	}

	product := crawler.Product{
		Name:       "Dune",
		Brand:      "Herbert",
		Price:      12.50,
		Available:  true,
		URL:        "https://example.com/p/dune",
		CategoryID: cat.ID,
	}
	if err := store.InsertProduct(&product); err != nil {
		t.Fatalf("Failed to insert product: %v", err)
	}
	if product.ID == 0 {
		t.Error("Expected product to receive an id on insert")
	}

	count, err := store.CountProducts()
	if err != nil {
		t.Fatalf("Failed to count products: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 product, got %d", count)
	}
}

func TestInsertProductRejectsUnknownCategory(t *testing.T) {
	store := newTestStore(t)

	product := crawler.Product{Name: "Orphan", CategoryID: 999}
	if err := store.InsertProduct(&product); err == nil {
		t.Error("Expected foreign key violation for unknown category")
	}
}

func TestListRootCategories(t *testing.T) {
	store := newTestStore(t)

	// Roots in menu order, one child under the first.
	a := crawler.Category{Name: "A", URL: "https://example.com/a"}
	b := crawler.Category{Name: "B", URL: "https://example.com/b"}
	for _, cat := range []*crawler.Category{&a, &b} {
		if err := store.InsertCategory(cat); err != nil {
			t.Fatalf("Failed to insert %s: %v", cat.Name, err)
		}
	}
	child := crawler.Category{Name: "A1", URL: "https://example.com/a1", ParentID: &a.ID}
	if err := store.InsertCategory(&child); err != nil {
		t.Fatalf("Failed to insert child: %v", err)
	}

	roots, err := store.ListRootCategories()
	if err != nil {
		t.Fatalf("Failed to list roots: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("Expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "A" || roots[1].Name != "B" {
		t.Errorf("Expected roots in insertion order [A B], got [%s %s]", roots[0].Name, roots[1].Name)
	}
	if roots[0].ParentID != nil {
		t.Error("Root categories must have nil ParentID")
	}
}

func TestListLeafCategories(t *testing.T) {
	store := newTestStore(t)

	a := crawler.Category{Name: "A", URL: "https://example.com/a"}
	if err := store.InsertCategory(&a); err != nil {
		t.Fatalf("Failed to insert A: %v", err)
	}
	a1 := crawler.Category{Name: "A1", URL: "https://example.com/a1", ParentID: &a.ID}
	if err := store.InsertCategory(&a1); err != nil {
		t.Fatalf("Failed to insert A1: %v", err)
	}
	// B is a root with no children: also a leaf.
	b := crawler.Category{Name: "B", URL: "https://example.com/b"}
	if err := store.InsertCategory(&b); err != nil {
		t.Fatalf("Failed to insert B: %v", err)
	}

	leaves, err := store.ListLeafCategories()
	if err != nil {
		t.Fatalf("Failed to list leaves: %v", err)
	}

	names := make(map[string]bool)
	for _, leaf := range leaves {
		names[leaf.Name] = true
	}
	if len(leaves) != 2 || !names["A1"] || !names["B"] {
		t.Errorf("Expected leaves {A1, B}, got %v", names)
	}
}

func TestDeleteAll(t *testing.T) {
	store := newTestStore(t)

	cat := crawler.Category{Name: "A", URL: "https://example.com/a"}
	if err := store.InsertCategory(&cat); err != nil {
		t.Fatalf("Failed to insert category: %v", err)
	}
	product := crawler.Product{Name: "P", CategoryID: cat.ID}
	if err := store.InsertProduct(&product); err != nil {
		t.Fatalf("Failed to insert product: %v", err)
	}

	// Products reference categories, so they must be wiped first.
	if err := store.DeleteAllProducts(); err != nil {
		t.Fatalf("Failed to delete products: %v", err)
	}
	if err := store.DeleteAllCategories(); err != nil {
		t.Fatalf("Failed to delete categories: %v", err)
	}

	catCount, err := store.CountCategories()
	if err != nil {
		t.Fatalf("Failed to count categories: %v", err)
	}
	prodCount, err := store.CountProducts()
	if err != nil {
		t.Fatalf("Failed to count products: %v", err)
	}
	if catCount != 0 || prodCount != 0 {
		t.Errorf("Expected empty tables after reset, got %d categories, %d products", catCount, prodCount)
	}
}

func TestOpenInvalidPath(t *testing.T) {
	if _, err := NewSQLiteStore(filepath.Join(t.TempDir(), "missing-dir", "x", "db.sqlite")); err == nil {
		t.Error("Expected error opening database in a nonexistent directory")
	}
}
