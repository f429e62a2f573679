package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// PublicUser is the redacted user view embedded in idea responses and user
// listings. Credential hash, code references, confirmation flag, role,
// cooldown timestamps and theme are never serialized here.
type PublicUser struct {
	ID        string  `json:"id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"email"`
	Link      *string `json:"link"`
	Pfp       *string `json:"pfp"`
}

type IdeaResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	UsefulLink  string       `json:"usefulLink"`
	FirstLink   *string      `json:"firstLink"`
	SecondLink  *string      `json:"secondLink"`
	ThirdLink   *string      `json:"thirdLink"`
	LastEdited  *time.Time   `json:"lastEdited"`
	Author      PublicUser   `json:"author"`
	Members     []PublicUser `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ProfileResponse is the caller's own profile; it may carry fields that are
// stripped from PublicUser because the owner is allowed to see them.
type ProfileResponse struct {
	ID          string         `json:"id"`
	FirstName   *string        `json:"firstName"`
	LastName    *string        `json:"lastName"`
	Email       string         `json:"email"`
	Link        *string        `json:"link"`
	Pfp         *string        `json:"pfp"`
	ColorTheme  string         `json:"colorTheme"`
	IsConfirmed bool           `json:"isConfirmed"`
	Ideas       []IdeaResponse `json:"ideas"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
