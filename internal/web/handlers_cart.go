package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zafran-house/ordering/internal/cart"
	"github.com/zafran-house/ordering/internal/catalog"
	"github.com/zafran-house/ordering/internal/pricing"
)

type addToCartRequest struct {
	ItemID     string   `json:"item_id"`
	Quantity   int      `json:"quantity"`
	SpiceLevel string   `json:"spice_level"`
	AddOns     []string `json:"add_ons"`
}

type cartStateResponse struct {
	Count int         `json:"count"`
	Total int64       `json:"total"`
	Lines []cart.Line `json:"lines"`
}

func (s *Server) cartState(c *cart.Cart) cartStateResponse {
	return cartStateResponse{Count: c.Count(), Total: c.Total(), Lines: c.Lines()}
}

// handleCartAdd resolves the item against the catalog, freezes the
// configured unit price, and merges the line into the session cart.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		jsonError(w, "item_id is required", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		jsonError(w, "quantity must be a positive integer", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	item, err := s.catalog.GetMenuItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			jsonError(w, "menu item not found", http.StatusNotFound)
			return
		}
		s.logger.Error(ctx, "resolve cart item", err, map[string]interface{}{"item_id": req.ItemID})
		jsonError(w, "could not add to cart, please try again", http.StatusBadGateway)
		return
	}

	if req.SpiceLevel != "" && !item.HasSpiceLevel(req.SpiceLevel) {
		jsonError(w, "unknown spice level", http.StatusBadRequest)
		return
	}
	for _, a := range req.AddOns {
		if !item.HasAddOn(a) {
			jsonError(w, "unknown add-on", http.StatusBadRequest)
			return
		}
	}

	// Configured price per unit: base plus flat add-on surcharge.
	unitPrice, err := pricing.LinePrice(item.BasePrice, len(req.AddOns), 1)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	categoryLabel := ""
	if cats, err := s.catalog.ListCategories(ctx, false); err == nil {
		for _, c := range cats {
			if c.ID == item.CategoryID {
				categoryLabel = c.Name
				break
			}
		}
	}

	var customization *cart.Customization
	if req.SpiceLevel != "" || len(req.AddOns) > 0 {
		customization = &cart.Customization{SpiceLevel: req.SpiceLevel, AddOns: req.AddOns}
	}

	c := s.cartFor(r)
	if err := c.Add(cart.Line{
		ItemID:        item.ID,
		Name:          item.Name,
		UnitPrice:     unitPrice,
		Quantity:      req.Quantity,
		ImageURL:      item.ImageURL,
		Category:      categoryLabel,
		Customization: customization,
	}); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.cartState(c))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c := s.cartFor(r)
	if err := c.UpdateQuantity(mux.Vars(r)["id"], req.Quantity); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.cartState(c))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	c := s.cartFor(r)
	c.Remove(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, s.cartState(c))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	c := s.cartFor(r)
	c.Clear()
	writeJSON(w, http.StatusOK, s.cartState(c))
}
