package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"startup-hub/backend/internal/auth"
	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/constants"
	"startup-hub/backend/internal/db/repositories"
	"startup-hub/backend/internal/logging"
	"startup-hub/backend/internal/metrics"
	"startup-hub/backend/internal/models/dtos"
	"startup-hub/backend/internal/models/entities"
	gormModels "startup-hub/backend/internal/models/gorm"
)

const (
	passwordHashCost = 8
	// Recovery codes live 15 minutes and are random, so a cheaper cost is
	// acceptable for them.
	recoveryCodeHashCost = 5
)

// CodeStore is the confirmation-code persistence the user service needs.
// Satisfied by repositories.CodeRepository; tests substitute an in-memory
// fake.
type CodeStore interface {
	Insert(ctx context.Context, code string) (*entities.ConfirmationCode, error)
	GetByID(ctx context.Context, id string) (*entities.ConfirmationCode, error)
	Delete(ctx context.Context, id string) error
}

// UserService owns accounts: registration with email confirmation, login,
// password recovery, and the gated profile mutations.
type UserService struct {
	userRepo *repositories.UserRepository
	codes    CodeStore
	mailer   common.EmailSender
	uploader common.Uploader
	tokens   *auth.TokenService
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
}

func NewUserService(
	userRepo *repositories.UserRepository,
	codes CodeStore,
	mailer common.EmailSender,
	uploader common.Uploader,
	tokens *auth.TokenService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		codes:    codes,
		mailer:   mailer,
		uploader: uploader,
		tokens:   tokens,
		cache:    cache,
		metrics:  metricsReg,
	}
}

// Register creates an unconfirmed account and mails a confirmation code.
// A previous registration with the same email that was never confirmed is
// replaced; a confirmed one blocks the email.
func (s *UserService) Register(ctx context.Context, req dtos.RegisterUserReq) (*dtos.MessageResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.IsConfirmed {
			return nil, common.ErrEmailTaken
		}
		if err := s.userRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	code := generateConfirmCode()
	stored, err := s.codes.Insert(ctx, code)
	if err != nil {
		return nil, err
	}

	user := &gormModels.User{
		FirstName:     &req.FirstName,
		LastName:      &req.LastName,
		Email:         req.Email,
		Password:      string(hashed),
		ConfirmCodeID: &stored.ID,
		Role:          constants.RoleUser,
		ColorTheme:    constants.ThemeLight,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.UsersRegisteredTotal.Inc()
	s.sendMailAsync(req.Email, code, s.mailer.SendConfirmationCode)

	return &dtos.MessageResponse{Message: "Code sent to your email"}, nil
}

// ConfirmEmail checks the mailed code against the stored one. Expired codes
// are deleted on sight so a retry mails a fresh one.
func (s *UserService) ConfirmEmail(ctx context.Context, req dtos.ConfirmEmailReq) (*dtos.MessageResponse, error) {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user.ConfirmCodeID == nil {
		return nil, common.ErrConfirmation
	}

	stored, err := s.codes.GetByID(ctx, *user.ConfirmCodeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.ErrConfirmation
		}
		return nil, err
	}

	if time.Since(stored.CreatedAt) > constants.ConfirmationCodeTTL {
		_ = s.codes.Delete(ctx, stored.ID)
		return nil, common.ErrCodeExpired
	}
	if stored.Code != req.Code {
		return nil, common.ErrConfirmation
	}

	user.IsConfirmed = true
	user.ConfirmCodeID = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	_ = s.codes.Delete(ctx, stored.ID)

	return &dtos.MessageResponse{Message: "Email confirmed"}, nil
}

// ResendCode replaces the pending confirmation code with a fresh one.
func (s *UserService) ResendCode(ctx context.Context, email string) (*dtos.MessageResponse, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsConfirmed {
		return nil, common.ErrConfirmation
	}

	if user.ConfirmCodeID != nil {
		_ = s.codes.Delete(ctx, *user.ConfirmCodeID)
	}

	code := generateConfirmCode()
	stored, err := s.codes.Insert(ctx, code)
	if err != nil {
		return nil, err
	}

	user.ConfirmCodeID = &stored.ID
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.sendMailAsync(email, code, s.mailer.SendConfirmationCode)
	return &dtos.MessageResponse{Message: "Code sent to your email"}, nil
}

// Login verifies credentials and returns a bearer token. Unconfirmed
// accounts cannot log in.
func (s *UserService) Login(ctx context.Context, req dtos.LoginReq) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsConfirmed {
		return nil, common.ErrNotConfirmed
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dtos.LoginResponse{Token: token}, nil
}

// ForgotPassword mails a recovery code. Only its bcrypt hash is stored, so
// a database leak does not leak usable codes.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (*dtos.MessageResponse, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.PasswordRecoveryCodeID != nil {
		_ = s.codes.Delete(ctx, *user.PasswordRecoveryCodeID)
	}

	code := generateConfirmCode()
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), recoveryCodeHashCost)
	if err != nil {
		return nil, err
	}

	stored, err := s.codes.Insert(ctx, string(hashed))
	if err != nil {
		return nil, err
	}

	user.PasswordRecoveryCodeID = &stored.ID
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.sendMailAsync(email, code, s.mailer.SendPasswordChangeCode)
	return &dtos.MessageResponse{Message: "Code sent to your email"}, nil
}

// ChangePassword finalizes recovery: the mailed code must match the stored
// hash within the validity window.
func (s *UserService) ChangePassword(ctx context.Context, req dtos.ChangePasswordReq) (*dtos.MessageResponse, error) {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user.PasswordRecoveryCodeID == nil {
		return nil, common.ErrConfirmation
	}

	stored, err := s.codes.GetByID(ctx, *user.PasswordRecoveryCodeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.ErrConfirmation
		}
		return nil, err
	}

	if time.Since(stored.CreatedAt) > constants.ConfirmationCodeTTL {
		_ = s.codes.Delete(ctx, stored.ID)
		return nil, common.ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Code), []byte(req.Code)) != nil {
		return nil, common.ErrConfirmation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordHashCost)
	if err != nil {
		return nil, err
	}

	user.Password = string(hashed)
	user.PasswordRecoveryCodeID = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	_ = s.codes.Delete(ctx, stored.ID)

	return &dtos.MessageResponse{Message: "Password changed"}, nil
}

// GetProfile returns the caller's own profile with authored ideas.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dtos.ProfileResponse, error) {
	user, err := s.userRepo.GetByIDWithIdeas(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", userID)
		}
		return nil, err
	}

	return &dtos.ProfileResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Link:        user.Link,
		Pfp:         user.Pfp,
		ColorTheme:  user.ColorTheme.String(),
		IsConfirmed: user.IsConfirmed,
		Ideas:       toIdeaResponses(user.Ideas),
	}, nil
}

// EditProfile applies the whitelisted fields behind the 24h cooldown. The
// timestamp is written in the same save as the change, so a gated failure
// never charges the cooldown.
func (s *UserService) EditProfile(ctx context.Context, userID string, req dtos.EditProfileReq) (*dtos.MessageResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := common.CheckTimeLimit(user.EditProfileLimit, constants.ProfileEditLimitHours); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Link != nil {
		user.Link = req.Link
	}

	now := time.Now()
	user.EditProfileLimit = &now

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Delete(string(constants.CacheKeyIdeaList))

	return &dtos.MessageResponse{Message: "Success"}, nil
}

// SetPfp uploads a new profile picture behind the 24h cooldown.
func (s *UserService) SetPfp(ctx context.Context, userID string, file dtos.ImageFile) (*dtos.MessageResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := common.CheckTimeLimit(user.ChangePfpLimit, constants.PfpChangeLimitHours); err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.UploadImage(ctx, file)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.UploadsTotal.WithLabelValues("ok").Inc()

	now := time.Now()
	user.Pfp = &uploaded.URL
	user.ChangePfpLimit = &now

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Delete(string(constants.CacheKeyIdeaList))

	return &dtos.MessageResponse{Message: "Success"}, nil
}

// ChangeTheme flips the profile theme preference. Not cooldown-gated.
func (s *UserService) ChangeTheme(ctx context.Context, userID string, theme string) (*dtos.MessageResponse, error) {
	parsed, ok := constants.ParseColorTheme(theme)
	if !ok {
		return nil, common.ErrInvalidTheme
	}

	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ColorTheme = parsed
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &dtos.MessageResponse{Message: "Success"}, nil
}

// ListUsers returns all users, redacted.
func (s *UserService) ListUsers(ctx context.Context) ([]dtos.PublicUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPublicUsers(users), nil
}

// GetUser returns one user, redacted.
func (s *UserService) GetUser(ctx context.Context, id string) (*dtos.PublicUser, error) {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := toPublicUser(user)
	return &pub, nil
}

// DeleteUser removes the account along with its memberships, pending
// requests and authored ideas.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(string(constants.CacheKeyIdeaList))
	return nil
}

func (s *UserService) findByID(ctx context.Context, id string) (*gormModels.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", email)
		}
		return nil, err
	}
	return user, nil
}

// sendMailAsync fires the mail in the background; delivery failures are
// logged and never fail the request.
func (s *UserService) sendMailAsync(email, code string, send func(context.Context, string, string) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := send(ctx, email, code); err != nil {
			logging.Error("failed to send code email", "email", email, "error", err.Error())
		}
	}()
}

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// generateConfirmCode builds a six-character code of three letters and
// three digits in shuffled order.
func generateConfirmCode() string {
	buf := make([]byte, 6)
	for i := 0; i < 3; i++ {
		buf[i] = codeLetters[rand.Intn(len(codeLetters))]
		buf[i+3] = codeDigits[rand.Intn(len(codeDigits))]
	}
	rand.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return string(buf)
}
