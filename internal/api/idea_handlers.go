package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"startup-hub/backend/internal/auth"
	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/models/dtos"
	"startup-hub/backend/internal/services"
)

// ListIdeasHandler handles GET /ideas
//
// @Summary      List all startup ideas
// @Tags         Ideas
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /ideas [get]
func ListIdeasHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		ideas, err := ideaSvc.ListIdeas(r.Context())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ideas fetched", ideas)
	}
}

// GetIdeaHandler handles GET /ideas/{id}
func GetIdeaHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		idea, err := ideaSvc.GetIdea(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Idea fetched", idea)
	}
}

// ListMyIdeasHandler handles GET /ideas/all/my
func ListMyIdeasHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		ideas, err := ideaSvc.ListMy(r.Context(), claims.UserID())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ideas fetched", ideas)
	}
}

// CreateIdeaHandler handles POST /ideas (multipart form).
//
// @Summary      Create a startup idea
// @Description  Creates an idea from a multipart form with an image file.
//
//	Subject to a 12h per-user creation cooldown.
//
// @Tags         Ideas
// @Accept       multipart/form-data
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer token"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /ideas [post]
func CreateIdeaHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := r.ParseMultipartForm(common.MaxImageSize); err != nil {
			common.RespondError(w, initTime, nil, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		image, err := readImageFile(r)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}
		if image == nil {
			common.RespondDomainError(w, initTime, common.ErrMissingFile)
			return
		}

		req := dtos.CreateIdeaReq{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			UsefulLink:  r.FormValue("usefulLink"),
			Image:       image,
		}
		if req.Name == "" || req.Description == "" {
			common.RespondError(w, initTime, nil, "Name and description are required", http.StatusBadRequest)
			return
		}

		idea, err := ideaSvc.CreateIdea(r.Context(), claims.UserID(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Idea created", idea)
	}
}

// EditIdeaHandler handles PATCH /ideas/{id} (multipart form). Absent fields
// are left unchanged; only the author can edit, behind a 12h cooldown.
func EditIdeaHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := r.ParseMultipartForm(common.MaxImageSize); err != nil {
			common.RespondError(w, initTime, nil, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		image, err := readImageFile(r)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		patch := dtos.EditIdeaPatch{Image: image}
		if v := r.FormValue("name"); v != "" {
			patch.Name = &v
		}
		if v := r.FormValue("description"); v != "" {
			patch.Description = &v
		}
		if v := r.FormValue("usefulLink"); v != "" {
			patch.UsefulLink = &v
		}

		idea, err := ideaSvc.EditIdea(r.Context(), chi.URLParam(r, "id"), claims.UserID(), patch)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Idea updated", idea)
	}
}

// DeleteMyIdeaHandler handles DELETE /ideas/my/{id} (author only).
func DeleteMyIdeaHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := ideaSvc.DeleteIdea(r.Context(), chi.URLParam(r, "id"), claims.UserID()); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Idea deleted", nil)
	}
}

// DeleteIdeaHandler handles DELETE /ideas/{id}, the unrestricted delete.
func DeleteIdeaHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := ideaSvc.DeleteAny(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Idea deleted", nil)
	}
}

// ApplyToTeamHandler handles PATCH /ideas/apply/to/team/{id}
func ApplyToTeamHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := ideaSvc.ApplyToTeam(r.Context(), claims.UserID(), chi.URLParam(r, "id")); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Request sent", nil)
	}
}

// ApproveRequestHandler handles PATCH /ideas/approve/request/to/team/{userId}/{teamId}
func ApproveRequestHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		err := ideaSvc.ApproveRequest(
			r.Context(),
			chi.URLParam(r, "userId"),
			claims.UserID(),
			chi.URLParam(r, "teamId"),
		)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Request approved", nil)
	}
}

// DeclineRequestHandler handles PATCH /ideas/decline/request/to/team/{userId}/{teamId}
func DeclineRequestHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		err := ideaSvc.DeclineRequest(
			r.Context(),
			chi.URLParam(r, "userId"),
			claims.UserID(),
			chi.URLParam(r, "teamId"),
		)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Request declined", nil)
	}
}

// LeaveTeamHandler handles PATCH /ideas/leave/team/{id}
func LeaveTeamHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := ideaSvc.LeaveTeam(r.Context(), claims.UserID(), chi.URLParam(r, "id")); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Left the team", nil)
	}
}

// GetRequestsHandler handles GET /ideas/get/requests/to/{teamId} (author only).
func GetRequestsHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		requests, err := ideaSvc.GetRequests(r.Context(), claims.UserID(), chi.URLParam(r, "teamId"))
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Requests fetched", requests)
	}
}

// InsertLinkHandler handles PATCH /ideas/insert/link/to/progress/{teamId}/{numberOfLink}
func InsertLinkHandler(ideaSvc *services.IdeaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		slot, err := strconv.Atoi(chi.URLParam(r, "numberOfLink"))
		if err != nil {
			common.RespondDomainError(w, initTime, common.ErrInvalidSlot)
			return
		}

		var req dtos.InsertLinkReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Link == "" {
			common.RespondError(w, initTime, nil, "Link is required", http.StatusBadRequest)
			return
		}

		if err := ideaSvc.InsertLink(r.Context(), claims.UserID(), chi.URLParam(r, "teamId"), slot, req.Link); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Link saved", nil)
	}
}
