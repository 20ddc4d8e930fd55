package handler

import (
	"net/http"
	"strings"

	"campus-market/internal/apiclient"
	"campus-market/internal/media"
	"campus-market/internal/model"
	"campus-market/internal/provider"

	"github.com/rs/zerolog"
)

// PageHandler renders the marketplace pages as JSON view models. Pages read
// the catalogue and session from the marketplace provider.
type PageHandler struct {
	loginPath     string
	uploader      media.Uploader
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewPageHandler creates the page handler. uploader may be nil, in which
// case listings are created without images.
func NewPageHandler(loginPath string, uploader media.Uploader, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		loginPath:     loginPath,
		uploader:      uploader,
		maxUploadSize: 10 << 20,
		logger:        logger.With().Str("handler", "page").Logger(),
	}
}

// view is the envelope every page renders.
type view struct {
	Page  string         `json:"page"`
	Theme provider.Theme `json:"theme"`
	User  *model.User    `json:"user"`
	Data  any            `json:"data,omitempty"`
}

func newView(r *http.Request, page string, data any) view {
	v := view{
		Page:  page,
		Theme: provider.ThemeFrom(r.Context()),
		Data:  data,
	}
	if m := provider.MarketplaceFrom(r.Context()); m != nil {
		v.User = m.User
	}
	return v
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newView(r, "home", map[string]any{
		"links": []string{"/marketplace", "/list-item", "/profile"},
	}))
}

// Marketplace handles GET /marketplace, optionally filtered by ?category= and ?q=.
func (h *PageHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())

	products, err := state.Catalogue.Products.GetAll(r.Context())
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")
	products = FilterProducts(products, category, query)

	writeJSON(w, http.StatusOK, newView(r, "marketplace", map[string]any{
		"products": products,
		"count":    len(products),
		"filters": map[string]string{
			"category": category,
			"q":        query,
		},
	}))
}

// FilterProducts keeps products in category (case-insensitive, empty matches
// all) whose title or description contains query.
func FilterProducts(products []model.Product, category, query string) []model.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Product handles GET /product/{id}.
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())
	id := r.PathValue("id")

	product, err := state.Catalogue.Products.GetByID(r.Context(), id)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	data := map[string]any{"product": product}
	if product.SellerID != "" {
		seller, err := state.Catalogue.Users.GetByID(r.Context(), product.SellerID)
		switch {
		case err == nil:
			data["seller"] = seller
		case apiclient.IsUnauthorized(err):
			h.writeAPIError(w, r, err)
			return
		default:
			h.logger.Warn().Err(err).Str("seller_id", product.SellerID).Msg("failed to load seller")
		}
	}

	writeJSON(w, http.StatusOK, newView(r, "product", data))
}

// Profile handles GET /profile: the current user with their favorites and
// purchase requests.
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())
	ctx := r.Context()

	me, err := state.Catalogue.Auth.Me(ctx)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	favorites, err := state.Catalogue.Favorites.GetByUser(ctx, me.ID)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	requests, err := state.Catalogue.PurchaseRequests.GetAll(ctx)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	var buying, selling []model.PurchaseRequest
	for _, req := range requests {
		if req.BuyerID == me.ID {
			buying = append(buying, req)
		}
		if req.SellerID == me.ID {
			selling = append(selling, req)
		}
	}

	v := newView(r, "profile", map[string]any{
		"profile":   me,
		"favorites": favorites,
		"buying":    buying,
		"selling":   selling,
	})
	v.User = me
	writeJSON(w, http.StatusOK, v)
}

// AuthCallback handles GET /auth/callback?token=...: it adopts the token and
// redirects to the marketplace.
func (h *PageHandler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingToken, model.ErrMissingToken.Message, h.logger)
		return
	}

	user, err := state.Session.Adopt(r.Context(), token)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	h.logger.Info().Str("user_id", user.ID).Msg("signed in via callback")
	http.Redirect(w, r, "/marketplace", http.StatusFound)
}
