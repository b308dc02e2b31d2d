package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/inkwell/pkg/errhttp"
	"github.com/ghuser/inkwell/pkg/httpx"
	pkgvalidator "github.com/ghuser/inkwell/pkg/validator"
	appsvcs "github.com/ghuser/inkwell/services/worldbuilding/application/services"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
)

// CharacterRequest is the request body for creating or updating a character.
type CharacterRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Tier  string `json:"tier" validate:"required,oneof=main recurring minor"`
	Bio   string `json:"bio" validate:"max=5000"`
	Notes string `json:"notes" validate:"max=2000"`
}

// CharacterResponse is the character read model returned by the API.
type CharacterResponse struct {
	ID         int64     `json:"id"`
	UniverseID int64     `json:"universe_id"`
	Name       string    `json:"name"`
	Tier       string    `json:"tier"`
	Bio        string    `json:"bio"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// CharacterHandler handles character requests.
type CharacterHandler struct {
	svc *appsvcs.Services
}

// NewCharacterHandler returns a CharacterHandler backed by the given services.
func NewCharacterHandler(svc *appsvcs.Services) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// Create handles POST /universes/{universeID}/characters.
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	universeID, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CharacterRequest](w, r)
	if !ok {
		return
	}

	c, result, err := h.svc.Characters.Create(r.Context(), universeID, req.Name, req.Tier, req.Bio, req.Notes)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusCreated, characterResponse(c))
}

// Get handles GET /characters/{characterID}.
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "characterID")
	if !ok {
		return
	}

	c, err := h.svc.Characters.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, characterResponse(c))
}

// List handles GET /universes/{universeID}/characters.
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	universeID, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}

	characters, err := h.svc.Characters.ListByUniverse(r.Context(), universeID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]CharacterResponse, 0, len(characters))
	for _, c := range characters {
		resp = append(resp, characterResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Cast handles GET /chapters/{chapterID}/characters, main tier first.
func (h *CharacterHandler) Cast(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}

	characters, err := h.svc.Characters.CastByChapter(r.Context(), chapterID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]CharacterResponse, 0, len(characters))
	for _, c := range characters {
		resp = append(resp, characterResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /characters/{characterID}.
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "characterID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CharacterRequest](w, r)
	if !ok {
		return
	}

	c, result, err := h.svc.Characters.Update(r.Context(), id, req.Name, req.Tier, req.Bio, req.Notes)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusOK, characterResponse(c))
}

// Delete handles DELETE /characters/{characterID}.
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "characterID")
	if !ok {
		return
	}

	if err := h.svc.Characters.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func characterResponse(c *models.Character) CharacterResponse {
	return CharacterResponse{
		ID:         c.ID.Int64(),
		UniverseID: c.UniverseID.Int64(),
		Name:       c.Name.String(),
		Tier:       c.Tier.String(),
		Bio:        c.Bio.String(),
		Notes:      c.Notes.String(),
		CreatedAt:  c.CreatedAt,
	}
}
