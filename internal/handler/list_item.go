package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"campus-market/internal/media"
	"campus-market/internal/model"
	"campus-market/internal/provider"
)

// formField describes one input of the list-item form.
type formField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

var listItemForm = []formField{
	{Name: "title", Type: "text", Required: true},
	{Name: "price", Type: "number", Required: true},
	{Name: "description", Type: "textarea"},
	{Name: "condition", Type: "text"},
	{Name: "category", Type: "text"},
	{Name: "tags", Type: "text"},
	{Name: "images", Type: "file"},
}

// ListItemForm handles GET /list-item.
func (h *PageHandler) ListItemForm(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())
	if !state.SignedIn() {
		http.Redirect(w, r, h.loginPath, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, newView(r, "list-item", map[string]any{
		"fields": listItemForm,
	}))
}

// ListItem handles POST /list-item with a multipart form. Images are uploaded
// first, then the listing is created with the signed-in user as seller.
func (h *PageHandler) ListItem(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())
	if !state.SignedIn() {
		http.Redirect(w, r, h.loginPath, http.StatusFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, "invalid form: "+err.Error(), h.logger)
		return
	}

	input, err := parseListing(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, err.Error(), h.logger)
		return
	}
	input.SellerID = state.User.ID

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			url, err := h.upload(r, fh.Filename, fh.Open)
			if err != nil {
				status := http.StatusBadGateway
				if errors.Is(err, media.ErrUnsupportedType) {
					status = http.StatusBadRequest
				}
				writeError(w, r, status, model.ErrCodeUploadFailed, err.Error(), h.logger)
				return
			}
			input.Images = append(input.Images, url)
		}
	}

	product, err := state.Catalogue.Products.Create(r.Context(), input)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	h.logger.Info().
		Str("product_id", product.ID).
		Str("seller_id", input.SellerID).
		Int("images", len(input.Images)).
		Msg("listing created")

	writeJSON(w, http.StatusCreated, newView(r, "list-item", map[string]any{
		"product": product,
	}))
}

func (h *PageHandler) upload(r *http.Request, filename string, open func() (multipart.File, error)) (string, error) {
	if h.uploader == nil {
		return "", errors.New("image uploads are not configured")
	}
	f, err := open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.uploader.Upload(r.Context(), filename, f)
}

// parseListing reads the listing fields from the parsed form.
func parseListing(r *http.Request) (model.ProductInput, error) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return model.ProductInput{}, errors.New("title is required")
	}

	rawPrice := strings.TrimSpace(r.FormValue("price"))
	if rawPrice == "" {
		return model.ProductInput{}, errors.New("price is required")
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || price < 0 {
		return model.ProductInput{}, errors.New("price must be a non-negative number")
	}

	var tags []string
	for _, tag := range strings.Split(r.FormValue("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return model.ProductInput{
		Title:       title,
		Price:       price,
		Description: strings.TrimSpace(r.FormValue("description")),
		Condition:   strings.TrimSpace(r.FormValue("condition")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Tags:        tags,
	}, nil
}
