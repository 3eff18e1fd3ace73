package billing

import "errors"

// ErrUnknownProduct signals a treatment referencing a graft product
// that is not in the catalog. Unlike a blank wound area or price, an
// unresolvable product reference is a data-integrity problem and must
// not silently default to a zero price.
var ErrUnknownProduct = errors.New("unknown graft product")

// ProductKey is the composite identity of a graft product.
type ProductKey struct {
	Manufacturer string
	ProductName  string
	BillingCode  string
}

// Product is immutable pricing reference data.
type Product struct {
	Manufacturer     string  `json:"manufacturer"`
	ProductName      string  `json:"product_name"`
	PricePerUnitArea float64 `json:"price_per_unit_area"`
	BillingCode      string  `json:"billing_code"`
}

// Key returns the product's composite identity.
func (p Product) Key() ProductKey {
	return ProductKey{Manufacturer: p.Manufacturer, ProductName: p.ProductName, BillingCode: p.BillingCode}
}

// Catalog is an indexed graft product lookup. Loaded once at startup
// (or per tenant from the product table); reads only after that.
type Catalog struct {
	products map[ProductKey]Product
}

// NewCatalog indexes the given products. Later duplicates of the same
// key win, matching last-write semantics of the product table.
func NewCatalog(products []Product) *Catalog {
	m := make(map[ProductKey]Product, len(products))
	for _, p := range products {
		m[p.Key()] = p
	}
	return &Catalog{products: m}
}

// Lookup resolves a product by its composite key.
func (c *Catalog) Lookup(key ProductKey) (Product, error) {
	p, ok := c.products[key]
	if !ok {
		return Product{}, ErrUnknownProduct
	}
	return p, nil
}

// Price resolves just the price-per-unit-area for a product.
func (c *Catalog) Price(key ProductKey) (float64, error) {
	p, err := c.Lookup(key)
	if err != nil {
		return 0, err
	}
	return p.PricePerUnitArea, nil
}

// Len reports the number of indexed products.
func (c *Catalog) Len() int {
	return len(c.products)
}
