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

// UniverseRequest is the request body for creating or updating a universe.
type UniverseRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UniverseResponse is the universe read model returned by the API.
type UniverseResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UniverseDetailResponse includes the universe's stories and characters.
type UniverseDetailResponse struct {
	UniverseResponse
	Stories    []StoryResponse     `json:"stories"`
	Characters []CharacterResponse `json:"characters"`
}

// UniverseHandler handles /universes requests.
type UniverseHandler struct {
	svc *appsvcs.Services
}

// NewUniverseHandler returns a UniverseHandler backed by the given services.
func NewUniverseHandler(svc *appsvcs.Services) *UniverseHandler {
	return &UniverseHandler{svc: svc}
}

// Create handles POST /universes.
func (h *UniverseHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UniverseRequest](w, r)
	if !ok {
		return
	}

	u, result, err := h.svc.Universes.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusCreated, universeResponse(u))
}

// Get handles GET /universes/{universeID}.
func (h *UniverseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}

	u, err := h.svc.Universes.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, universeResponse(u))
}

// GetDetail handles GET /universes/{universeID}/detail, returning the
// universe with its stories and characters.
func (h *UniverseHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}

	u, err := h.svc.Universes.GetWithContent(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := UniverseDetailResponse{
		UniverseResponse: universeResponse(u),
		Stories:          make([]StoryResponse, 0, len(u.Stories)),
		Characters:       make([]CharacterResponse, 0, len(u.Characters)),
	}
	for _, s := range u.Stories {
		resp.Stories = append(resp.Stories, storyResponse(s))
	}
	for _, c := range u.Characters {
		resp.Characters = append(resp.Characters, characterResponse(c))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

// List handles GET /universes. An optional ?q= filters by name substring.
func (h *UniverseHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		universes []*models.Universe
		err       error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		universes, err = h.svc.Universes.Search(r.Context(), q)
	} else {
		universes, err = h.svc.Universes.List(r.Context())
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]UniverseResponse, 0, len(universes))
	for _, u := range universes {
		resp = append(resp, universeResponse(u))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /universes/{universeID}.
func (h *UniverseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UniverseRequest](w, r)
	if !ok {
		return
	}

	u, result, err := h.svc.Universes.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusOK, universeResponse(u))
}

// Delete handles DELETE /universes/{universeID}.
func (h *UniverseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}

	if err := h.svc.Universes.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func universeResponse(u *models.Universe) UniverseResponse {
	return UniverseResponse{
		ID:          u.ID.Int64(),
		Name:        u.Name.String(),
		Description: u.Description.String(),
		CreatedAt:   u.CreatedAt,
	}
}
