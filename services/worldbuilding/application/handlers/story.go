package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/ghuser/inkwell/pkg/errhttp"
	"github.com/ghuser/inkwell/pkg/httpx"
	pkgvalidator "github.com/ghuser/inkwell/pkg/validator"
	appsvcs "github.com/ghuser/inkwell/services/worldbuilding/application/services"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
)

// StoryRequest is the request body for creating or updating a story.
type StoryRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Logline string `json:"logline" validate:"max=500"`
}

// ReorderChaptersRequest carries the story's new reading order. It must list
// every chapter of the story exactly once.
type ReorderChaptersRequest struct {
	ChapterIDs []int64 `json:"chapter_ids" validate:"required,min=1,dive,gt=0"`
}

// StoryResponse is the story read model returned by the API.
type StoryResponse struct {
	ID         int64     `json:"id"`
	UniverseID int64     `json:"universe_id"`
	Name       string    `json:"name"`
	Logline    string    `json:"logline"`
	CreatedAt  time.Time `json:"created_at"`
}

// StoryDetailResponse includes the story's chapters in reading order.
type StoryDetailResponse struct {
	StoryResponse
	Chapters []ChapterResponse `json:"chapters"`
}

// StoryHandler handles story requests.
type StoryHandler struct {
	svc *appsvcs.Services
}

// NewStoryHandler returns a StoryHandler backed by the given services.
func NewStoryHandler(svc *appsvcs.Services) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Create handles POST /universes/{universeID}/stories.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	universeID, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[StoryRequest](w, r)
	if !ok {
		return
	}

	s, result, err := h.svc.Stories.Create(r.Context(), universeID, req.Name, req.Logline)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusCreated, storyResponse(s))
}

// Get handles GET /stories/{storyID}, returning the story with its chapters.
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}

	s, err := h.svc.Stories.GetWithChapters(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := StoryDetailResponse{
		StoryResponse: storyResponse(s),
		Chapters:      make([]ChapterResponse, 0, len(s.Chapters)),
	}
	for _, c := range s.Chapters {
		resp.Chapters = append(resp.Chapters, chapterResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// List handles GET /universes/{universeID}/stories.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	universeID, ok := pathID(w, r, "universeID")
	if !ok {
		return
	}

	stories, err := h.svc.Stories.ListByUniverse(r.Context(), universeID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]StoryResponse, 0, len(stories))
	for _, s := range stories {
		resp = append(resp, storyResponse(s))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /stories/{storyID}.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[StoryRequest](w, r)
	if !ok {
		return
	}

	s, result, err := h.svc.Stories.Update(r.Context(), id, req.Name, req.Logline)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusOK, storyResponse(s))
}

// Delete handles DELETE /stories/{storyID}.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}

	if err := h.svc.Stories.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /stories/{storyID}/chapters/order.
func (h *StoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ReorderChaptersRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Stories.ReorderChapters(r.Context(), id, req.ChapterIDs)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	sort.Slice(s.Chapters, func(i, j int) bool {
		return s.Chapters[i].ChapterOrder < s.Chapters[j].ChapterOrder
	})
	resp := StoryDetailResponse{
		StoryResponse: storyResponse(s),
		Chapters:      make([]ChapterResponse, 0, len(s.Chapters)),
	}
	for _, c := range s.Chapters {
		resp.Chapters = append(resp.Chapters, chapterResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func storyResponse(s *models.Story) StoryResponse {
	return StoryResponse{
		ID:         s.ID.Int64(),
		UniverseID: s.UniverseID.Int64(),
		Name:       s.Name.String(),
		Logline:    s.Logline.String(),
		CreatedAt:  s.CreatedAt,
	}
}
