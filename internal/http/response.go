package http

import (
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/internal/service"
)

type ChatSearchRequest struct {
	Message string `json:"message"`
	Page    *int   `json:"page,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

type ChatSearchResponse struct {
	search.Page
	SearchCriteria search.Criteria `json:"searchCriteria"`
	Query          search.Filter   `json:"query"`
}

func newChatSearchResponse(res service.ChatSearchResult) ChatSearchResponse {
	return ChatSearchResponse{
		Page:           res.Page,
		SearchCriteria: res.Criteria,
		Query:          res.Query,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	healthStatusOK          = "ok"
	healthStatusUnavailable = "unavailable"
)
