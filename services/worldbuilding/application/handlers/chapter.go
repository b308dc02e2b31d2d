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

// ChapterRequest is the request body for creating or updating a chapter.
// The reading-order slot is assigned by the server, never by the client.
type ChapterRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=10000"`
}

// LinkCharacterRequest names the character to add to a chapter's cast.
type LinkCharacterRequest struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
}

// ChapterResponse is the chapter read model without prose.
type ChapterResponse struct {
	ID           int64     `json:"id"`
	StoryID      int64     `json:"story_id"`
	Title        string    `json:"title"`
	ChapterOrder int       `json:"chapter_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChapterDetailResponse includes the prose and the linked cast.
type ChapterDetailResponse struct {
	ChapterResponse
	Content    string              `json:"content"`
	Characters []CharacterResponse `json:"characters"`
}

// ChapterHandler handles chapter requests.
type ChapterHandler struct {
	svc *appsvcs.Services
}

// NewChapterHandler returns a ChapterHandler backed by the given services.
func NewChapterHandler(svc *appsvcs.Services) *ChapterHandler {
	return &ChapterHandler{svc: svc}
}

// Create handles POST /stories/{storyID}/chapters. The new chapter lands at
// the end of the reading order.
func (h *ChapterHandler) Create(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ChapterRequest](w, r)
	if !ok {
		return
	}

	c, result, err := h.svc.Chapters.Create(r.Context(), storyID, req.Title, req.Content)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusCreated, chapterResponse(c))
}

// Get handles GET /chapters/{chapterID}, returning the prose and cast.
func (h *ChapterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}

	c, err := h.svc.Chapters.GetWithContent(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ChapterDetailResponse{
		ChapterResponse: chapterResponse(c),
		Content:         c.Content.String(),
		Characters:      make([]CharacterResponse, 0, len(c.Characters)),
	}
	for _, ch := range c.Characters {
		resp.Characters = append(resp.Characters, characterResponse(ch))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// List handles GET /stories/{storyID}/chapters, in reading order and without
// prose.
func (h *ChapterHandler) List(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "storyID")
	if !ok {
		return
	}

	chapters, err := h.svc.Chapters.ListByStory(r.Context(), storyID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		resp = append(resp, chapterResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /chapters/{chapterID}.
func (h *ChapterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ChapterRequest](w, r)
	if !ok {
		return
	}

	c, result, err := h.svc.Chapters.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !result.IsValid() {
		writeRulesFailed(w, result)
		return
	}

	httpx.JSON(w, http.StatusOK, chapterResponse(c))
}

// Delete handles DELETE /chapters/{chapterID}.
func (h *ChapterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}

	if err := h.svc.Chapters.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LinkCharacter handles POST /chapters/{chapterID}/characters.
func (h *ChapterHandler) LinkCharacter(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[LinkCharacterRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Chapters.LinkCharacter(r.Context(), chapterID, req.CharacterID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkCharacter handles DELETE /chapters/{chapterID}/characters/{characterID}.
func (h *ChapterHandler) UnlinkCharacter(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := pathID(w, r, "chapterID")
	if !ok {
		return
	}
	characterID, ok := pathID(w, r, "characterID")
	if !ok {
		return
	}

	if err := h.svc.Chapters.UnlinkCharacter(r.Context(), chapterID, characterID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func chapterResponse(c *models.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:           c.ID.Int64(),
		StoryID:      c.StoryID.Int64(),
		Title:        c.Title.String(),
		ChapterOrder: c.ChapterOrder,
		CreatedAt:    c.CreatedAt,
	}
}
