package routes

import (
	"github.com/go-chi/chi/v5"

	"startup-hub/backend/internal/api"
	"startup-hub/backend/internal/middleware"
)

// RegisterAPIRoutes mounts the auth, ideas and user route groups. Paths
// under the authenticated groups require a valid bearer token; everything
// else is public.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	authGuard := middleware.AuthMiddleware(deps.Services.Tokens)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", api.RegisterHandler(deps.Services.User))
		r.Post("/login", api.LoginHandler(deps.Services.User))
		r.Post("/confirm", api.ConfirmEmailHandler(deps.Services.User))
		r.Post("/resend", api.ResendCodeHandler(deps.Services.User))
		r.Post("/forgot/password", api.ForgotPasswordHandler(deps.Services.User))
		r.Post("/change/password", api.ChangePasswordHandler(deps.Services.User))
	})

	r.Route("/ideas", func(r chi.Router) {
		r.Get("/", api.ListIdeasHandler(deps.Services.Idea))
		r.Get("/{id}", api.GetIdeaHandler(deps.Services.Idea))
		r.Delete("/{id}", api.DeleteIdeaHandler(deps.Services.Idea))

		r.Group(func(r chi.Router) {
			r.Use(authGuard)

			r.Post("/", api.CreateIdeaHandler(deps.Services.Idea))
			r.Patch("/{id}", api.EditIdeaHandler(deps.Services.Idea))
			r.Get("/all/my", api.ListMyIdeasHandler(deps.Services.Idea))
			r.Delete("/my/{id}", api.DeleteMyIdeaHandler(deps.Services.Idea))

			r.Patch("/apply/to/team/{id}", api.ApplyToTeamHandler(deps.Services.Idea))
			r.Patch("/leave/team/{id}", api.LeaveTeamHandler(deps.Services.Idea))
			r.Get("/get/requests/to/{teamId}", api.GetRequestsHandler(deps.Services.Idea))
			r.Patch("/approve/request/to/team/{userId}/{teamId}", api.ApproveRequestHandler(deps.Services.Idea))
			r.Patch("/decline/request/to/team/{userId}/{teamId}", api.DeclineRequestHandler(deps.Services.Idea))
			r.Patch("/insert/link/to/progress/{teamId}/{numberOfLink}", api.InsertLinkHandler(deps.Services.Idea))
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Get("/", api.ListUsersHandler(deps.Services.User))
		r.Get("/{id}", api.GetUserHandler(deps.Services.User))
		r.Delete("/{id}", api.DeleteUserHandler(deps.Services.User))

		r.Group(func(r chi.Router) {
			r.Use(authGuard)

			r.Get("/get/profile", api.GetProfileHandler(deps.Services.User))
			r.Patch("/change/pfp", api.ChangePfpHandler(deps.Services.User))
			r.Patch("/edit/profile", api.EditProfileHandler(deps.Services.User))
			r.Patch("/edit/profile/{theme}", api.ChangeThemeHandler(deps.Services.User))
		})
	})
}
