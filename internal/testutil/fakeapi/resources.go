package fakeapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultFeaturedLimit = 10

// plantLocked finds a plant by id. Caller holds a.mu.
func (a *API) plantLocked(id string) *models.Plant {
	for _, p := range a.plants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (a *API) postLocked(id string) *postRecord {
	for _, p := range a.posts {
		if p.post.ID == id {
			return p
		}
	}
	return nil
}

// viewLocked is the wire form of a post, with its plant embedded.
func (a *API) viewLocked(rec *postRecord) models.Post {
	out := rec.post
	out.Images = slices.Clone(rec.post.Images)
	if rec.plantID != "" {
		if p := a.plantLocked(rec.plantID); p != nil {
			cp := *p
			out.Plant = &cp
		}
	}
	return out
}

func (a *API) handleListPlants(w http.ResponseWriter, r *http.Request) {
	var status models.PlantStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, ok := models.ParsePlantStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(raw))
			return
		}
		status = st
	}

	uid := requestUserID(r)
	a.mu.Lock()
	out := []models.Plant{}
	for i := len(a.plants) - 1; i >= 0; i-- {
		p := a.plants[i]
		if p.UserID == uid && (status == "" || p.Status == status) {
			out = append(out, *p)
		}
	}
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleFeaturedPlants(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeaturedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	a.mu.Lock()
	out := []models.Plant{}
	for i := len(a.plants) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *a.plants[i])
	}
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	p := a.plantLocked(chi.URLParam(r, "id"))
	var out models.Plant
	if p != nil {
		out = *p
	}
	a.mu.Unlock()

	if p == nil {
		writeError(w, http.StatusNotFound, "plant not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlantRequest
	if !decode(r, &req) || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Species) == "" {
		writeError(w, http.StatusBadRequest, "name and species are required")
		return
	}

	ts := now()
	p := &models.Plant{
		ID:        uuid.NewString(),
		UserID:    requestUserID(r),
		Name:      strings.TrimSpace(req.Name),
		Species:   strings.TrimSpace(req.Species),
		Status:    models.PlantStatusActive,
		ImageURL:  req.ImageURL,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	a.mu.Lock()
	a.plants = append(a.plants, p)
	out := *p
	a.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (a *API) handleUpdatePlant(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePlantRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Status != nil {
		if _, ok := models.ParsePlantStatus(string(*req.Status)); !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.plantLocked(chi.URLParam(r, "id"))
	switch {
	case p == nil:
		writeError(w, http.StatusNotFound, "plant not found")
		return
	case p.UserID != requestUserID(r):
		writeError(w, http.StatusForbidden, "not your plant")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Species != nil {
		p.Species = *req.Species
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	p.UpdatedAt = now()

	writeJSON(w, http.StatusOK, *p)
}

func (a *API) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.plantLocked(id)
	switch {
	case p == nil:
		writeError(w, http.StatusNotFound, "plant not found")
		return
	case p.UserID != requestUserID(r):
		writeError(w, http.StatusForbidden, "not your plant")
		return
	}

	a.plants = slices.DeleteFunc(a.plants, func(p *models.Plant) bool { return p.ID == id })
	writeJSON(w, http.StatusOK, models.DeleteResponse{Deleted: true, ID: id})
}

func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	out := []models.Post{}
	for i := len(a.posts) - 1; i >= 0; i-- {
		out = append(out, a.viewLocked(a.posts[i]))
	}
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	rec := a.postLocked(chi.URLParam(r, "id"))
	var out models.Post
	if rec != nil {
		out = a.viewLocked(rec)
	}
	a.mu.Unlock()

	if rec == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if !decode(r, &req) || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if _, ok := models.ParsePostType(string(req.Type)); !ok {
		writeError(w, http.StatusBadRequest, "unknown post type")
		return
	}

	uid := requestUserID(r)

	a.mu.Lock()
	defer a.mu.Unlock()

	rec := &postRecord{}
	if req.PlantID != nil && *req.PlantID != "" {
		p := a.plantLocked(*req.PlantID)
		if p == nil || p.UserID != uid {
			writeError(w, http.StatusBadRequest, "unknown plant")
			return
		}
		rec.plantID = p.ID
	}

	ts := now()
	rec.post = models.Post{
		ID:        uuid.NewString(),
		UserID:    uid,
		Type:      req.Type,
		Content:   req.Content,
		Images:    slices.Clone(req.Images),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if rec.post.Images == nil {
		rec.post.Images = []string{}
	}
	a.posts = append(a.posts, rec)

	writeJSON(w, http.StatusCreated, a.viewLocked(rec))
}

func (a *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Type != nil {
		if _, ok := models.ParsePostType(string(*req.Type)); !ok {
			writeError(w, http.StatusBadRequest, "unknown post type")
			return
		}
	}

	uid := requestUserID(r)

	a.mu.Lock()
	defer a.mu.Unlock()

	rec := a.postLocked(chi.URLParam(r, "id"))
	switch {
	case rec == nil:
		writeError(w, http.StatusNotFound, "post not found")
		return
	case rec.post.UserID != uid:
		writeError(w, http.StatusForbidden, "not your post")
		return
	}

	if req.PlantID != nil {
		if p := a.plantLocked(*req.PlantID); *req.PlantID != "" && (p == nil || p.UserID != uid) {
			writeError(w, http.StatusBadRequest, "unknown plant")
			return
		}
		rec.plantID = *req.PlantID
	}
	if req.Type != nil {
		rec.post.Type = *req.Type
	}
	if req.Content != nil {
		rec.post.Content = *req.Content
	}
	if req.Images != nil {
		rec.post.Images = slices.Clone(req.Images)
	}
	rec.post.UpdatedAt = now()

	writeJSON(w, http.StatusOK, a.viewLocked(rec))
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a.mu.Lock()
	defer a.mu.Unlock()

	rec := a.postLocked(id)
	switch {
	case rec == nil:
		writeError(w, http.StatusNotFound, "post not found")
		return
	case rec.post.UserID != requestUserID(r):
		writeError(w, http.StatusForbidden, "not your post")
		return
	}

	a.posts = slices.DeleteFunc(a.posts, func(p *postRecord) bool { return p.post.ID == id })
	writeJSON(w, http.StatusOK, models.DeleteResponse{Deleted: true, ID: id})
}
