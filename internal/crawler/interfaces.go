package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a URL and parses the body into a traversable
// document. Implementations must impose a fixed inter-request delay and
// return a *FetchError on any transport or decode failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// CategoryStore persists categories. InsertCategory assigns the
// category's ID from the store's autoincrement sequence; the walker
// relies on that ID being stable and usable as a foreign key before any
// child referencing it is inserted.
type CategoryStore interface {
	InsertCategory(cat *Category) error
	ListRootCategories() ([]Category, error)
	ListLeafCategories() ([]Category, error)
	CountCategories() (int, error)
	DeleteAllCategories() error
}

// ProductStore persists products.
type ProductStore interface {
	InsertProduct(p *Product) error
	CountProducts() (int, error)
	DeleteAllProducts() error
}

// Store combines both repositories plus lifecycle management. The SQLite
// implementation lives in internal/storage.
type Store interface {
	CategoryStore
	ProductStore
	Close() error
}
