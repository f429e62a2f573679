package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "startup-hub/backend/internal/models/gorm"
)

// IdeaRepository persists the idea aggregate. Every mutation goes through
// one transactional save of the whole aggregate; the membership edge is
// never written independently.
type IdeaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

var ErrRecordNotFound = gorm.ErrRecordNotFound

// GetByID loads the full aggregate: author, members and pending requests.
func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*gormModels.Idea, error) {
	var idea gormModels.Idea

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Members").
		Preload("Requests").
		Where("id = ?", id).
		First(&idea).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch idea: %w", err)
	}

	return &idea, nil
}

// GetByIDForAuthor loads the aggregate only when the given user authored it.
// A non-owned id behaves exactly like a missing one.
func (r *IdeaRepository) GetByIDForAuthor(ctx context.Context, id, authorID string) (*gormModels.Idea, error) {
	var idea gormModels.Idea

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Members").
		Preload("Requests").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&idea).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch idea: %w", err)
	}

	return &idea, nil
}

// List returns all ideas with author and members preloaded.
func (r *IdeaRepository) List(ctx context.Context) ([]gormModels.Idea, error) {
	var ideas []gormModels.Idea

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Members").
		Order("created_at DESC").
		Find(&ideas).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	return ideas, nil
}

// ListByAuthor returns the ideas authored by one user.
func (r *IdeaRepository) ListByAuthor(ctx context.Context, authorID string) ([]gormModels.Idea, error) {
	var ideas []gormModels.Idea

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Members").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&ideas).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list ideas by author: %w", err)
	}

	return ideas, nil
}

// CreateWithAuthorStamp inserts the idea and updates the author's
// last-idea-created timestamp in the same transaction, so a failed insert
// never charges the creation cooldown.
func (r *IdeaRepository) CreateWithAuthorStamp(ctx context.Context, idea *gormModels.Idea, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Members", "Requests").Create(idea).Error; err != nil {
			return fmt.Errorf("failed to create idea: %w", err)
		}
		if err := tx.Model(&gormModels.User{}).
			Where("id = ?", idea.AuthorID).
			Update("startup_limit", now).Error; err != nil {
			return fmt.Errorf("failed to stamp author cooldown: %w", err)
		}
		return nil
	})
}

// SaveAggregate persists the idea row together with its members and
// requests sets in one transaction. Association rows are replaced, not
// appended, so the in-memory sets are the source of truth.
func (r *IdeaRepository) SaveAggregate(ctx context.Context, idea *gormModels.Idea) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Members", "Requests").Save(idea).Error; err != nil {
			return fmt.Errorf("failed to save idea: %w", err)
		}
		if err := tx.Model(idea).Association("Members").Replace(memberPtrs(idea.Members)); err != nil {
			return fmt.Errorf("failed to save members: %w", err)
		}
		if err := tx.Model(idea).Association("Requests").Replace(memberPtrs(idea.Requests)); err != nil {
			return fmt.Errorf("failed to save requests: %w", err)
		}
		return nil
	})
}

// Delete removes the aggregate and its membership/request rows explicitly;
// no DB-level cascade is assumed.
func (r *IdeaRepository) Delete(ctx context.Context, idea *gormModels.Idea) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM startup_memberships WHERE startup_id = ?", idea.ID).Error; err != nil {
			return fmt.Errorf("failed to clear memberships: %w", err)
		}
		if err := tx.Exec("DELETE FROM startup_requests WHERE startup_id = ?", idea.ID).Error; err != nil {
			return fmt.Errorf("failed to clear requests: %w", err)
		}
		if err := tx.Delete(&gormModels.Idea{}, "id = ?", idea.ID).Error; err != nil {
			return fmt.Errorf("failed to delete idea: %w", err)
		}
		return nil
	})
}

// gorm association Replace wants pointers when the models carry hooks
func memberPtrs(users []gormModels.User) []*gormModels.User {
	out := make([]*gormModels.User, 0, len(users))
	for i := range users {
		out = append(out, &users[i])
	}
	return out
}
