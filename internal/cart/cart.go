// Package cart holds the in-memory shopping cart for one browser session.
// Cart state lives for the life of the process only and is deliberately not
// scoped to the signed-in identity: signing out leaves the cart intact.
package cart

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidQuantity is returned for negative quantities.
var ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")

// Customization is the spice level and add-ons chosen for a line. A nil
// *Customization and a zero-valued one are distinct merge identities.
type Customization struct {
	SpiceLevel string   `json:"spice_level,omitempty"`
	AddOns     []string `json:"add_ons,omitempty"`
}

// Line is one cart entry. UnitPrice is frozen at add time; later catalog
// price changes do not touch lines already in the cart.
type Line struct {
	ItemID        string         `json:"item_id"`
	Name          string         `json:"name"`
	UnitPrice     int64          `json:"unit_price"`
	Quantity      int            `json:"quantity"`
	ImageURL      string         `json:"image_url"`
	Category      string         `json:"category"`
	Customization *Customization `json:"customization,omitempty"`
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// mergeKey builds the canonical merge identity for an item and its
// customization. Add-on order does not matter; absence of customization does.
func mergeKey(itemID string, c *Customization) string {
	if c == nil {
		return itemID
	}
	addOns := make([]string, len(c.AddOns))
	copy(addOns, c.AddOns)
	sort.Strings(addOns)
	return itemID + "\x00" + c.SpiceLevel + "\x00" + strings.Join(addOns, "\x1f")
}

// Cart is the ordered sequence of lines for one session. All methods are
// safe for concurrent use; the session owns the cart, but nothing stops two
// tabs from racing a request.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the candidate into an existing line with the same item and
// customization, or appends a new line. A zero quantity defaults to 1.
func (c *Cart) Add(candidate Line) error {
	if candidate.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if candidate.Quantity == 0 {
		candidate.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := mergeKey(candidate.ItemID, candidate.Customization)
	for i := range c.lines {
		if mergeKey(c.lines[i].ItemID, c.lines[i].Customization) == key {
			c.lines[i].Quantity += candidate.Quantity
			return nil
		}
	}

	c.lines = append(c.lines, candidate)
	return nil
}

// Remove drops every line for the item id. Removing an absent id is a no-op.
// Removal is by item id alone, matching the shipped site: when the same item
// sits in the cart with two customizations, both go.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(itemID)
}

func (c *Cart) removeLocked(itemID string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// UpdateQuantity sets the quantity of the lines for an item id. Zero removes
// the item; a negative value is rejected. An absent id is a no-op.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity == 0 {
		c.removeLocked(itemID)
		return nil
	}

	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Count returns the sum of line quantities, not the number of lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Total returns the cart total in whole rupees, priced at add time.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
