package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	gormModels "startup-hub/backend/internal/models/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user without relationships.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByIDWithIdeas retrieves a user with authored ideas and their rosters
// preloaded.
func (r *UserRepository) GetByIDWithIdeas(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Preload("Ideas").
		Preload("Ideas.Author").
		Preload("Ideas.Members").
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with ideas: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]gormModels.User, error) {
	var users []gormModels.User

	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *gormModels.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Save persists the user row. Authored ideas are saved through the idea
// repository, never from here.
func (r *UserRepository) Save(ctx context.Context, user *gormModels.User) error {
	if err := r.db.WithContext(ctx).Omit("Ideas").Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Delete removes the user and explicitly cleans every set the user
// participates in: memberships, pending requests, and authored ideas with
// their rosters. No DB-level cascade is assumed.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM startup_memberships WHERE user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clear memberships: %w", err)
		}
		if err := tx.Exec("DELETE FROM startup_requests WHERE user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clear requests: %w", err)
		}
		if err := tx.Exec(
			"DELETE FROM startup_memberships WHERE startup_id IN (SELECT id FROM ideas WHERE author_id = ?)", id,
		).Error; err != nil {
			return fmt.Errorf("failed to clear authored idea memberships: %w", err)
		}
		if err := tx.Exec(
			"DELETE FROM startup_requests WHERE startup_id IN (SELECT id FROM ideas WHERE author_id = ?)", id,
		).Error; err != nil {
			return fmt.Errorf("failed to clear authored idea requests: %w", err)
		}
		if err := tx.Delete(&gormModels.Idea{}, "author_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete authored ideas: %w", err)
		}
		if err := tx.Delete(&gormModels.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
