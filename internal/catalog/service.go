package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/zafran-house/ordering/internal/supabase"
)

// ErrNotFound is returned when a menu item does not exist.
var ErrNotFound = errors.New("catalog: menu item not found")

// Service reads categories, menu items, and locations.
type Service struct {
	db *supabase.Client
}

// New creates a catalog service.
func New(db *supabase.Client) *Service {
	return &Service{db: db}
}

// Filter narrows ListMenuItems.
type Filter struct {
	AvailableOnly bool
	CategoryID    string
}

// ListCategories returns categories ordered for display.
func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]Category, error) {
	q := s.db.From("menu_categories").Select("*")
	if activeOnly {
		q = q.Eq("active", true)
	}
	q = q.Order("display_order")

	var categories []Category
	if err := q.ExecuteInto(ctx, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListMenuItems returns menu items ordered for display.
func (s *Service) ListMenuItems(ctx context.Context, f Filter) ([]MenuItem, error) {
	q := s.db.From("menu_items").Select("*")
	if f.AvailableOnly {
		q = q.Eq("is_available", true)
	}
	if f.CategoryID != "" {
		q = q.Eq("category_id", f.CategoryID)
	}
	q = q.Order("display_order")

	var items []MenuItem
	if err := q.ExecuteInto(ctx, &items); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem returns one menu item by id.
func (s *Service) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	var item MenuItem
	err := s.db.From("menu_items").Select("*").Eq("id", id).Single().ExecuteInto(ctx, &item)
	if err != nil {
		if supabase.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &item, nil
}

// FeaturedItems returns up to n available items for the landing preview.
func (s *Service) FeaturedItems(ctx context.Context, n int) ([]MenuItem, error) {
	var items []MenuItem
	err := s.db.From("menu_items").Select("*").
		Eq("is_available", true).
		Order("display_order").
		Limit(n).
		ExecuteInto(ctx, &items)
	if err != nil {
		return nil, fmt.Errorf("featured items: %w", err)
	}
	return items, nil
}

// ListLocations returns restaurant branches for the landing page.
func (s *Service) ListLocations(ctx context.Context, activeOnly bool) ([]Location, error) {
	q := s.db.From("locations").Select("*")
	if activeOnly {
		q = q.Eq("is_active", true)
	}
	q = q.Order("name")

	var locations []Location
	if err := q.ExecuteInto(ctx, &locations); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}
