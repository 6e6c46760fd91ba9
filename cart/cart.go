package cart

import (
	"sync"
)

// Item is one selected dish with the name and price snapshotted when it was
// added. Unique by DishID within a cart.
type Item struct {
	DishID    uint    `json:"dish_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// Subtotal -> snapshot price times quantity.
func (i Item) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the ephemeral, session-local list of selected dishes awaiting
// checkout. It lives in memory only and does not survive a restart.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add merges by dish id: an existing entry gets its quantity summed, a new
// dish is appended. Entry order is preserved either way.
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].DishID == item.DishID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// UpdateQuantity replaces the quantity of a dish. Quantity must be > 0;
// the caller validates before calling.
func (c *Cart) UpdateQuantity(dishID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].DishID == dishID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the entry for a dish. No-op when absent.
func (c *Cart) Remove(dishID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].DishID == dishID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums the snapshot subtotals.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Len reports the number of distinct dishes.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
