package inventory

import "fmt"

// Catalog handles inventory business logic.
type Catalog struct {
	store Store
}

// NewCatalog creates a Catalog backed by the given store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Restock increases the count for a SKU, creating the item if needed.
func (c *Catalog) Restock(sku, label string, n int) (*Item, error) {
	item, err := c.store.Lookup(sku)
	if err != nil {
		return nil, fmt.Errorf("restock: %w", err)
	}
	if item == nil {
		item = newItem(sku, label)
	}
	item.Count += n
	if err := c.store.Put(item); err != nil {
		return nil, fmt.Errorf("restock: %w", err)
	}
	return item, nil
}
