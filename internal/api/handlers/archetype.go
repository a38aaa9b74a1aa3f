package handlers

import (
	"net/http"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/api/response"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
)

// ArchetypeHandler serves the archetype table.
type ArchetypeHandler struct {
	table *draft.ArchetypeTable
}

// NewArchetypeHandler creates a new archetype handler.
func NewArchetypeHandler(table *draft.ArchetypeTable) *ArchetypeHandler {
	if table == nil {
		table = draft.DefaultArchetypes()
	}
	return &ArchetypeHandler{table: table}
}

// ListArchetypes handles GET /api/v1/archetypes.
func (h *ArchetypeHandler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	profiles := h.table.Profiles()
	response.List(w, profiles, len(profiles))
}
