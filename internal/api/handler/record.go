package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/solhaven/astrocade/internal/api/middleware"
	"github.com/solhaven/astrocade/internal/api/request"
	"github.com/solhaven/astrocade/internal/api/response"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/storage"
)

// RecordHandler handles player record endpoints
type RecordHandler struct {
	store    storage.PlayerStore
	identity *identity.Service
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(store storage.PlayerStore, ident *identity.Service) *RecordHandler {
	return &RecordHandler{
		store:    store,
		identity: ident,
	}
}

// GetPlayer handles GET /api/player. The record was synchronized by the
// middleware, so it is always present here.
func (h *RecordHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	rec := middleware.MustGetPlayer(r.Context())
	player := response.PlayerFromModel(rec)
	response.JSON(w, http.StatusOK, response.PlayerEnvelope{Player: &player})
}

// GetPlayerRecord handles GET /api/player-record. Unlike GetPlayer it
// reads the store directly, so the player field is null if the record
// vanished since sync.
func (h *RecordHandler) GetPlayerRecord(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	rec, err := h.store.GetPlayer(r.Context(), session.Identity)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			response.JSON(w, http.StatusOK, response.PlayerEnvelope{Player: nil})
			return
		}
		WriteError(w, err)
		return
	}

	player := response.PlayerFromModel(rec)
	response.JSON(w, http.StatusOK, response.PlayerEnvelope{Player: &player})
}

// UpdatePlayerRecord handles PATCH /update-player-record. The update
// overwrites the record's birth and sign fields wholesale; it never
// creates a record.
func (h *RecordHandler) UpdatePlayerRecord(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id := model.Identity(req.DiscordUserID)
	if id == "" {
		id = middleware.GetSession(r.Context()).Identity
	}

	update := model.PlayerUpdate{
		BirthDate:     req.BirthDate,
		BirthTime:     req.BirthTime,
		BirthLocation: req.BirthLocation,
		SunSign:       req.AstroData.SunSign,
		MoonSign:      req.AstroData.MoonSign,
		AscendantSign: req.AstroData.AscendantSign,
		MidheavenSign: req.AstroData.MidheavenSign,
	}

	if err := h.store.UpdatePlayerFields(r.Context(), id, update); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			response.JSON(w, http.StatusNotFound, response.MessageResponse{Message: "Player record not found"})
			return
		}
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Player record updated successfully!"})
}

// GetDiscordUserID handles GET /get-discord-user-id. This endpoint is
// not redirect-gated: an unauthenticated caller gets a plain 404 rather
// than a redirect, so page scripts can probe for a session.
func (h *RecordHandler) GetDiscordUserID(w http.ResponseWriter, r *http.Request) {
	session, err := h.identity.SessionFromRequest(r)
	if err != nil {
		response.JSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}

	response.JSON(w, http.StatusOK, response.IdentityResponse{DiscordUserID: string(session.Identity)})
}
