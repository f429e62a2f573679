package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"startup-hub/backend/internal/auth"
	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/models/dtos"
	"startup-hub/backend/internal/services"
)

// ListUsersHandler handles GET /user
func ListUsersHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := userSvc.ListUsers(r.Context())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Users fetched", users)
	}
}

// GetUserHandler handles GET /user/{id}
func GetUserHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := userSvc.GetUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "User fetched", user)
	}
}

// DeleteUserHandler handles DELETE /user/{id}, the unrestricted delete.
func DeleteUserHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := userSvc.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "User deleted", nil)
	}
}

// GetProfileHandler handles GET /user/get/profile
//
// @Summary      Get own profile
// @Description  Returns the caller's profile with authored ideas.
// @Tags         Users
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer token"
// @Success      200  {object}  dtos.APIResponse
// @Router       /user/get/profile [get]
func GetProfileHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		profile, err := userSvc.GetProfile(r.Context(), claims.UserID())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched", profile)
	}
}

// EditProfileHandler handles PATCH /user/edit/profile, behind the 24h
// profile cooldown.
func EditProfileHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.EditProfileReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid payload", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.EditProfile(r.Context(), claims.UserID(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// ChangePfpHandler handles PATCH /user/change/pfp (multipart form), behind
// the 24h picture cooldown.
func ChangePfpHandler(userSvc *services.UserService) http.HandlerFunc {
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

		resp, err := userSvc.SetPfp(r.Context(), claims.UserID(), *image)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// ChangeThemeHandler handles PATCH /user/edit/profile/{theme}
func ChangeThemeHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		resp, err := userSvc.ChangeTheme(r.Context(), claims.UserID(), chi.URLParam(r, "theme"))
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}
