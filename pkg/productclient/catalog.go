package productclient

import "slices"

// Catalog is an immutable list of products. Every method returns a new
// Catalog and leaves the receiver unchanged.
type Catalog struct {
	products []Product
}

// NewCatalog returns a catalog holding a copy of products.
func NewCatalog(products ...Product) Catalog {
	return Catalog{products: slices.Clone(products)}
}

// Products returns a copy of the products in order.
func (c Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c Catalog) Len() int {
	return len(c.products)
}

// Get returns the product with the given id.
func (c Catalog) Get(id string) (Product, bool) {
	i := slices.IndexFunc(c.products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return c.products[i], true
}

// WithProducts replaces the whole list.
func (c Catalog) WithProducts(products []Product) Catalog {
	return NewCatalog(products...)
}

// Add appends p.
func (c Catalog) Add(p Product) Catalog {
	products := make([]Product, 0, len(c.products)+1)
	products = append(products, c.products...)
	return Catalog{products: append(products, p)}
}

// Replace swaps the product with the given id for p, keeping its position.
func (c Catalog) Replace(id string, p Product) Catalog {
	products := slices.Clone(c.products)
	for i := range products {
		if products[i].ID == id {
			products[i] = p
		}
	}
	return Catalog{products: products}
}

// Remove drops the product with the given id.
func (c Catalog) Remove(id string) Catalog {
	return Catalog{products: slices.DeleteFunc(slices.Clone(c.products), func(p Product) bool {
		return p.ID == id
	})}
}
