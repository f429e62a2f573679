package services

import (
	gormModels "startup-hub/backend/internal/models/gorm"
	"startup-hub/backend/internal/models/dtos"
)

// toPublicUser strips everything a stranger must not see: credential hash,
// code references, confirmation flag, role, cooldown timestamps, theme.
// Every path that embeds a user inside an idea response goes through here.
func toPublicUser(u *gormModels.User) dtos.PublicUser {
	return dtos.PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Link:      u.Link,
		Pfp:       u.Pfp,
	}
}

func toPublicUsers(users []gormModels.User) []dtos.PublicUser {
	out := make([]dtos.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, toPublicUser(&users[i]))
	}
	return out
}

// toIdeaResponse maps the aggregate for non-author readers: author and
// members are redacted, pending requests are never included here (they are
// only returned to the author via GetRequests).
func toIdeaResponse(idea *gormModels.Idea) dtos.IdeaResponse {
	return dtos.IdeaResponse{
		ID:          idea.ID,
		Name:        idea.Name,
		Description: idea.Description,
		ImageURL:    idea.ImageURL,
		UsefulLink:  idea.UsefulLink,
		FirstLink:   idea.FirstLink,
		SecondLink:  idea.SecondLink,
		ThirdLink:   idea.ThirdLink,
		LastEdited:  idea.LastEdited,
		Author:      toPublicUser(&idea.Author),
		Members:     toPublicUsers(idea.Members),
		CreatedAt:   idea.CreatedAt,
	}
}

func toIdeaResponses(ideas []gormModels.Idea) []dtos.IdeaResponse {
	out := make([]dtos.IdeaResponse, 0, len(ideas))
	for i := range ideas {
		out = append(out, toIdeaResponse(&ideas[i]))
	}
	return out
}
