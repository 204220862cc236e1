package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/catalog-search/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-search/internal/event"
	"github.com/tuanvumaihuynh/catalog-search/internal/service"
	"github.com/tuanvumaihuynh/catalog-search/pkg/zerror"
)

// maxChatBodyBytes bounds the chat search request body.
const maxChatBodyBytes = 16 << 10

type catalogHandler struct {
	s          *Service
	catalogSvc service.CatalogService
}

func newCatalogHandler(s *Service, catalogSvc service.CatalogService) *catalogHandler {
	return &catalogHandler{
		s:          s,
		catalogSvc: catalogSvc,
	}
}

func (h *catalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var params service.SearchProductsParams

	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page); err != nil {
		h.s.handleRequestError(w, r, invalidParam("page", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		h.s.handleRequestError(w, r, invalidParam("limit", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", r.URL.Query(), &params.Search); err != nil {
		h.s.handleRequestError(w, r, invalidParam("search", err))
		return
	}

	page, err := h.catalogSvc.SearchProducts(r.Context(), params)
	if err != nil {
		h.s.handleSearchError(w, r, event.EntrypointBrowse, fmt.Errorf("catalog service search products: %w", err))
		return
	}

	h.s.writeJSON(w, r, http.StatusOK, page)
}

func (h *catalogHandler) ChatSearch(w http.ResponseWriter, r *http.Request) {
	var body ChatSearchRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxChatBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.s.handleRequestError(w, r, apperr.ValidationErr.WrapParent(fmt.Errorf("decode body: %w", err)))
		return
	}

	res, err := h.catalogSvc.ChatSearch(r.Context(), service.ChatSearchParams{
		Message: body.Message,
		Page:    body.Page,
		Limit:   body.Limit,
	})
	if err != nil {
		h.s.handleSearchError(w, r, event.EntrypointChat, fmt.Errorf("catalog service chat search: %w", err))
		return
	}

	h.s.writeJSON(w, r, http.StatusOK, newChatSearchResponse(res))
}

func invalidParam(name string, err error) error {
	return zerror.NewValidationFailed(
		apperr.ValidationErrorCode,
		fmt.Sprintf("invalid %s parameter", name),
	).WrapParent(err)
}
