package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zafran-house/ordering/internal/auth"
	"github.com/zafran-house/ordering/internal/cart"
	"github.com/zafran-house/ordering/internal/catalog"
	"github.com/zafran-house/ordering/internal/pricing"
)

// pageData is the payload every page template receives.
type pageData struct {
	User      *auth.Identity
	CartCount int
}

func (s *Server) pageData(r *http.Request) pageData {
	return pageData{
		User:      s.currentIdentity(r),
		CartCount: s.cartFor(r).Count(),
	}
}

// sampleLocations backs the landing page when the locations table is empty,
// matching the shipped site.
var sampleLocations = []catalog.Location{
	{Name: "Zafran House - Banjara Hills", Address: "Road No. 12, Banjara Hills, Hyderabad", Phone: "+91 40 2335 1234", IsActive: true},
	{Name: "Zafran House - Jubilee Hills", Address: "Plot 44, Jubilee Hills, Hyderabad", Phone: "+91 40 2355 5678", IsActive: true},
	{Name: "Zafran House - Gachibowli", Address: "DLF Cyber City, Gachibowli, Hyderabad", Phone: "+91 40 4012 9012", IsActive: true},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	featured, err := s.catalog.FeaturedItems(ctx, 6)
	if err != nil {
		s.logger.Error(ctx, "load featured items", err, nil)
		featured = nil
	}

	locations, err := s.catalog.ListLocations(ctx, true)
	if err != nil {
		s.logger.Error(ctx, "load locations", err, nil)
		locations = nil
	}
	if len(locations) == 0 {
		locations = sampleLocations
	}

	s.render(w, r, "index.html", struct {
		pageData
		Featured  []catalog.MenuItem
		Locations []catalog.Location
	}{s.pageData(r), featured, locations})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := s.catalog.ListCategories(ctx, true)
	if err != nil {
		s.logger.Error(ctx, "load categories", err, nil)
		jsonError(w, "menu is temporarily unavailable", http.StatusBadGateway)
		return
	}

	items, err := s.catalog.ListMenuItems(ctx, catalog.Filter{
		AvailableOnly: true,
		CategoryID:    r.URL.Query().Get("category"),
	})
	if err != nil {
		s.logger.Error(ctx, "load menu items", err, nil)
		jsonError(w, "menu is temporarily unavailable", http.StatusBadGateway)
		return
	}

	s.render(w, r, "menu.html", struct {
		pageData
		Categories []catalog.Category
		Items      []catalog.MenuItem
		Selected   string
	}{s.pageData(r), categories, items, r.URL.Query().Get("category")})
}

func (s *Server) handleMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	item, err := s.catalog.GetMenuItem(ctx, id)
	if err != nil {
		if err == catalog.ErrNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.Error(ctx, "load menu item", err, map[string]interface{}{"item_id": id})
		jsonError(w, "menu is temporarily unavailable", http.StatusBadGateway)
		return
	}

	s.render(w, r, "item.html", struct {
		pageData
		Item         *catalog.MenuItem
		AddOnPrice   int64
		DefaultSpice string
	}{s.pageData(r), item, pricing.AddOnUnitPrice, defaultSpice(item)})
}

// defaultSpice preselects the first offered spice level, as the site does.
func defaultSpice(item *catalog.MenuItem) string {
	if len(item.SpiceLevels) > 0 {
		return item.SpiceLevels[0]
	}
	return ""
}

func (s *Server) handleCartPage(w http.ResponseWriter, r *http.Request) {
	c := s.cartFor(r)

	s.render(w, r, "cart.html", struct {
		pageData
		Lines []cart.Line
		Total int64
	}{s.pageData(r), c.Lines(), c.Total()})
}

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "auth.html", s.pageData(r))
}
