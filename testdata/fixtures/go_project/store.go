package inventory

// Item is one stocked product.
type Item struct {
	SKU   string
	Label string
	Count int
}

// Store is the interface for inventory persistence.
type Store interface {
	Lookup(sku string) (*Item, error)
	Put(item *Item) error
}

func newItem(sku, label string) *Item {
	return &Item{SKU: sku, Label: label}
}
