package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/api/handlers"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/api/response"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		batchHandler := handlers.NewBatchHandler(s.store)
		r.Route("/batches", func(r chi.Router) {
			r.Get("/", batchHandler.ListBatches)
			r.Get("/{batchID}", batchHandler.GetBatch)
			r.Get("/{batchID}/summary", batchHandler.GetSummary)
			r.Get("/{batchID}/records", batchHandler.GetRecords)
			r.Get("/{batchID}/decks", batchHandler.GetDecks)
		})

		archetypeHandler := handlers.NewArchetypeHandler(s.archetypes)
		r.Get("/archetypes", archetypeHandler.ListArchetypes)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "draft-sim-api",
		"version": version.GetVersion(),
	})
}
