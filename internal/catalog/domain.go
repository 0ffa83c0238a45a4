// Package catalog reads the menu tables of the hosted backend. It is a thin
// accessor: filtering and ordering are passed through to PostgREST, and
// nothing is cached between page loads.
package catalog

import "time"

// Category groups menu items on the /menu tabs.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuItem is one orderable dish. Prices are in whole rupees.
type MenuItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	BasePrice       int64     `json:"base_price"`
	CategoryID      string    `json:"category_id"`
	ImageURL        string    `json:"image_url"`
	IsVegetarian    bool      `json:"is_vegetarian"`
	IsAvailable     bool      `json:"is_available"`
	PreparationTime int       `json:"preparation_time"`
	SpiceLevels     []string  `json:"spice_levels"`
	AvailableAddOns []string  `json:"available_addons"`
	DisplayOrder    int       `json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasSpiceLevel reports whether the item offers the given spice level.
func (m *MenuItem) HasSpiceLevel(level string) bool {
	for _, l := range m.SpiceLevels {
		if l == level {
			return true
		}
	}
	return false
}

// HasAddOn reports whether the item offers the given add-on.
func (m *MenuItem) HasAddOn(addOn string) bool {
	for _, a := range m.AvailableAddOns {
		if a == addOn {
			return true
		}
	}
	return false
}

// Location is one restaurant branch shown on the landing page.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}
