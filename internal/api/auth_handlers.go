package api

import (
	"encoding/json"
	"net/http"
	"time"

	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/models/dtos"
	"startup-hub/backend/internal/services"
)

// RegisterHandler handles POST /auth/register
//
// @Summary      Register a new account
// @Description  Creates an unconfirmed account and mails a confirmation code.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.RegisterUserReq  true  "Registration payload"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /auth/register [post]
func RegisterHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			common.RespondError(w, initTime, nil, "Email and password are required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.Register(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// LoginHandler handles POST /auth/login
func LoginHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			common.RespondError(w, initTime, nil, "Email and password are required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.Login(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Logged in", resp)
	}
}

// ConfirmEmailHandler handles POST /auth/confirm
func ConfirmEmailHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ConfirmEmailReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
			common.RespondError(w, initTime, nil, "Email and code are required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.ConfirmEmail(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// ResendCodeHandler handles POST /auth/resend
func ResendCodeHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ForgotPasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			common.RespondError(w, initTime, nil, "Email is required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.ResendCode(r.Context(), req.Email)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// ForgotPasswordHandler handles POST /auth/forgot/password
func ForgotPasswordHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ForgotPasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			common.RespondError(w, initTime, nil, "Email is required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.ForgotPassword(r.Context(), req.Email)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}

// ChangePasswordHandler handles POST /auth/change/password
func ChangePasswordHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ChangePasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" || req.NewPassword == "" {
			common.RespondError(w, initTime, nil, "Email, code and new password are required", http.StatusBadRequest)
			return
		}

		resp, err := userSvc.ChangePassword(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, resp.Message, nil)
	}
}
