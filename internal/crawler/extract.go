package crawler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Schema declares the CSS selectors and attribute names the extractors
// read from catalog markup. Defaults target the reference site; every
// selector can be overridden for sites with different markup.
type Schema struct {
	MenuLink     string // Main-menu anchor elements on the landing page
	MenuLabel    string // Label element inside a menu anchor
	SubcategItem string // Subcategory list items on a category page
	ProductItem  string // Product cards on a leaf category page
	NameAttr     string // Product name attribute on the card element
	BrandAttr    string // Product brand attribute on the card element
	PriceAttr    string // Product price attribute on the card element
	FastShipIcon string // Expedited-fulfillment marker inside a card
}

// DefaultSchema returns the selector set for the reference catalog site.
func DefaultSchema() Schema {
	return Schema{
		MenuLink:     "a.MenuItem__MenuLink-tii3xq-1.efuIbv",
		MenuLabel:    "span.text",
		SubcategItem: "div.list-group-item.is-child",
		ProductItem:  "div.product-item",
		NameAttr:     "data-title",
		BrandAttr:    "data-brand",
		PriceAttr:    "data-price",
		FastShipIcon: ".tikicon.icon-tikinow",
	}
}

// Extractor turns parsed documents into category and product drafts.
// Extractors are pure: they do no I/O and never touch the store, so a
// malformed page yields an empty result rather than an error.
type Extractor struct {
	schema Schema
	base   *url.URL
}

// NewExtractor creates an extractor resolving relative links against baseURL.
func NewExtractor(schema Schema, baseURL string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Extractor{schema: schema, base: base}, nil
}

// RootCategories scans the landing page for main-menu links and returns
// one root draft per link, in document order. Menu order is meaningful:
// roots are expanded in site-defined priority order.
func (e *Extractor) RootCategories(doc *goquery.Document) []Category {
	var cats []Category

	doc.Find(e.schema.MenuLink).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		name := strings.TrimSpace(sel.Find(e.schema.MenuLabel).Text())
		if name == "" {
			name = strings.TrimSpace(sel.Text())
		}

		cats = append(cats, Category{
			Name: name,
			URL:  e.resolveURL(href),
		})
	})

	return cats
}

// Subcategories scans a category page for subcategory list items and
// returns drafts parented to parent. An absent subcategory block is not
// an error: it means parent is a leaf, and the result is empty.
func (e *Extractor) Subcategories(doc *goquery.Document, parent *Category) []Category {
	var cats []Category

	doc.Find(e.schema.SubcategItem).Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		parentID := parent.ID
		cats = append(cats, Category{
			Name:     strings.TrimSpace(link.Text()),
			URL:      e.resolveURL(href),
			ParentID: &parentID,
		})
	})

	return cats
}

// Products scans a leaf category page for product cards. Name, brand and
// price are carried as element attributes in the source markup; a card
// missing any of them is skipped. No cards at all (pagination end,
// no-results page) yields an empty result.
func (e *Extractor) Products(doc *goquery.Document, cat *Category) []Product {
	var products []Product

	doc.Find(e.schema.ProductItem).Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr(e.schema.NameAttr)
		if !ok {
			return
		}
		brand, ok := sel.Attr(e.schema.BrandAttr)
		if !ok {
			return
		}
		priceRaw, ok := sel.Attr(e.schema.PriceAttr)
		if !ok {
			return
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceRaw), 64)
		if err != nil {
			return
		}

		href, _ := sel.Find("a").First().Attr("href")

		products = append(products, Product{
			Name:       name,
			Brand:      brand,
			Price:      price,
			Available:  sel.Find(e.schema.FastShipIcon).Length() > 0,
			URL:        e.resolveURL(href),
			CategoryID: cat.ID,
		})
	})

	return products
}

// resolveURL makes href absolute against the site base. Unparsable hrefs
// pass through unchanged.
func (e *Extractor) resolveURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.base.ResolveReference(u).String()
}
