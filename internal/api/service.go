// Package api implements the HTTP surface: auth, content generation,
// documents/history, and the admin analytics endpoints.
package api

import (
	"context"
	"errors"
	"net/http"

	"eduwrite-backend/internal/llm"
	"eduwrite-backend/internal/store"

	"github.com/go-chi/chi/v5"
)

// BackendService serves the student-facing endpoints. All user-owned writes
// go through resolveUser exactly once per request.
type BackendService struct {
	store store.Store
	llm   llm.Provider
	model string
	cache *responseCache
}

func NewBackendService(s store.Store, provider llm.Provider, model string) *BackendService {
	return &BackendService{
		store: s,
		llm:   provider,
		model: model,
		cache: newResponseCache(responseCacheTTL),
	}
}

func (s *BackendService) AddRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", RestCreatedHandler(s.Signup))
		r.Post("/email", RestHandler(s.EmailAuth))
	})
	r.Post("/generate", RestHandler(s.Generate))
	r.Post("/pdf-chat", RestHandler(s.PDFChat))
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", RestHandler(s.ListDocuments))
		r.Post("/", RestCreatedHandler(s.CreateDocument))
	})
	r.Route("/history", func(r chi.Router) {
		r.Get("/", RestHandler(s.GetHistory))
		r.Post("/clear", RestHandler(s.ClearHistory))
	})
}

func (s *BackendService) resolveUser(ctx context.Context, identifier string) (store.User, error) {
	user, err := store.ResolveUser(ctx, s.store, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, CodedErrorf(http.StatusNotFound, "User not found.")
		}
		return store.User{}, CodedErrorf(http.StatusInternalServerError, "error resolving user: %v", err)
	}
	return user, nil
}
