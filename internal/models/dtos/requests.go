package dtos

// ImageFile carries an uploaded file from the multipart handler to the
// upload collaborator.
type ImageFile struct {
	Name string
	Data []byte
}

type RegisterUserReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ConfirmEmailReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

type ChangePasswordReq struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// EditProfileReq whitelists the externally settable profile fields. Nil
// means "leave unchanged".
type EditProfileReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Link      *string `json:"link"`
}

// CreateIdeaReq is parsed from the multipart create form.
type CreateIdeaReq struct {
	Name        string
	Description string
	UsefulLink  string
	Image       *ImageFile
}

// EditIdeaPatch whitelists the editable idea fields. Nil means "leave
// unchanged"; id, author and timestamps are never settable from outside.
type EditIdeaPatch struct {
	Name        *string
	Description *string
	UsefulLink  *string
	Image       *ImageFile
}

type InsertLinkReq struct {
	Link string `json:"link"`
}
