package crawler

import (
	"fmt"
	"time"
)

// Category is a node in the catalog hierarchy. ID is zero until the
// category has been persisted; ParentID is nil for top-level categories
// discovered from the site's main menu.
type Category struct {
	ID       int64  // Assigned by the store on insert
	Name     string // Visible menu/list label
	URL      string // Absolute URL of the category page
	ParentID *int64 // nil for roots, otherwise a persisted Category ID
}

// Root reports whether the category was discovered from the main menu.
func (c *Category) Root() bool {
	return c.ParentID == nil
}

func (c *Category) String() string {
	if c.ParentID == nil {
		return fmt.Sprintf("Category(id=%d name=%q url=%s root)", c.ID, c.Name, c.URL)
	}
	return fmt.Sprintf("Category(id=%d name=%q url=%s parent=%d)", c.ID, c.Name, c.URL, *c.ParentID)
}

// Product is a listing-page summary of a single product. Products are
// terminal: they are persisted once and never crawled further.
type Product struct {
	ID          int64
	Name        string
	Brand       string
	Price       float64
	Available   bool   // Expedited-fulfillment marker present on the listing
	ReviewCount int    // Not exposed at listing time, always 0 from extraction
	URL         string // Product detail link, not followed
	CategoryID  int64  // Category whose page produced this product
}

// Stats tracks walker progress. Counts only ever increase during a run;
// they are operational visibility, not a correctness signal.
type Stats struct {
	Processed int // Frontier entries dequeued and fetched (or attempted)
	Persisted int // Rows successfully written
	Errors    int // Entries dropped due to fetch or persist failure
	StartTime time.Time
	Duration  time.Duration
}
