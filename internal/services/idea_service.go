package services

import (
	"context"
	"errors"
	"time"

	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/constants"
	"startup-hub/backend/internal/db/repositories"
	"startup-hub/backend/internal/metrics"
	"startup-hub/backend/internal/models/dtos"
	gormModels "startup-hub/backend/internal/models/gorm"
)

// IdeaService owns the idea lifecycle and the team-membership workflow.
// Per (idea, user) pair the membership state is one of: not involved,
// pending (in the requests set), member. The author is a fixed role outside
// that machine and is excluded from every transition.
//
// Every operation loads the aggregate, validates authorization and state,
// mutates the in-memory sets and persists the whole aggregate in one save.
// Two concurrent writes to the same idea race last-write-wins at the
// storage layer; there is no optimistic versioning.
type IdeaService struct {
	ideaRepo *repositories.IdeaRepository
	userRepo *repositories.UserRepository
	uploader common.Uploader
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
}

func NewIdeaService(
	ideaRepo *repositories.IdeaRepository,
	userRepo *repositories.UserRepository,
	uploader common.Uploader,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		userRepo: userRepo,
		uploader: uploader,
		cache:    cache,
		metrics:  metricsReg,
	}
}

// ListIdeas returns all ideas with redacted author/member data. The result
// is cached briefly; every idea mutation invalidates the entry.
func (s *IdeaService) ListIdeas(ctx context.Context) ([]dtos.IdeaResponse, error) {
	key := string(constants.CacheKeyIdeaList)

	if val, found := s.cache.Get(key); found {
		if cached, ok := val.([]dtos.IdeaResponse); ok {
			return cached, nil
		}
	}

	ideas, err := s.ideaRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := toIdeaResponses(ideas)
	s.cache.Set(key, resp, constants.CacheIdeaListTTL*time.Second)
	return resp, nil
}

// GetIdea returns one idea with author and members eagerly loaded and
// redacted. Pending requests are not part of this view; only the author
// sees them, through GetRequests.
func (s *IdeaService) GetIdea(ctx context.Context, ideaID string) (*dtos.IdeaResponse, error) {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	resp := toIdeaResponse(idea)
	return &resp, nil
}

// CreateIdea gates the author on the 12h creation cooldown, uploads the
// attached image, and persists the new aggregate. The cooldown timestamp is
// written in the same transaction as the insert, so a failed create never
// charges it.
func (s *IdeaService) CreateIdea(ctx context.Context, userID string, req dtos.CreateIdeaReq) (*dtos.IdeaResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := common.CheckTimeLimit(user.StartupLimit, constants.IdeaCreateLimitHours); err != nil {
		return nil, err
	}

	idea := &gormModels.Idea{
		Name:        req.Name,
		Description: req.Description,
		UsefulLink:  req.UsefulLink,
		AuthorID:    user.ID,
	}

	// Upload before any persistence; a collaborator failure aborts the
	// whole operation with nothing stored.
	if req.Image != nil {
		uploaded, err := s.uploadImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		idea.ImageURL = uploaded.URL
	}

	if err := s.ideaRepo.CreateWithAuthorStamp(ctx, idea, time.Now()); err != nil {
		return nil, err
	}

	s.metrics.IdeasCreatedTotal.Inc()
	s.invalidateList()

	idea.Author = *user
	resp := toIdeaResponse(idea)
	return &resp, nil
}

// EditIdea is restricted to the author via the lookup filter itself:
// editing a non-owned idea reports not-found, hiding its existence. The
// edit cooldown is tracked per idea on its last-edited timestamp.
func (s *IdeaService) EditIdea(ctx context.Context, ideaID, userID string, patch dtos.EditIdeaPatch) (*dtos.IdeaResponse, error) {
	idea, err := s.ideaRepo.GetByIDForAuthor(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("idea", ideaID)
		}
		return nil, err
	}

	if err := common.CheckTimeLimit(idea.LastEdited, constants.IdeaEditLimitHours); err != nil {
		return nil, err
	}

	if patch.Image != nil {
		uploaded, err := s.uploadImage(ctx, *patch.Image)
		if err != nil {
			return nil, err
		}
		idea.ImageURL = uploaded.URL
	}
	if patch.Name != nil {
		idea.Name = *patch.Name
	}
	if patch.Description != nil {
		idea.Description = *patch.Description
	}
	if patch.UsefulLink != nil {
		idea.UsefulLink = *patch.UsefulLink
	}

	now := time.Now()
	idea.LastEdited = &now

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return nil, err
	}

	s.invalidateList()

	resp := toIdeaResponse(idea)
	return &resp, nil
}

// DeleteIdea removes the caller's own idea.
func (s *IdeaService) DeleteIdea(ctx context.Context, ideaID, userID string) error {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return err
	}
	if idea.AuthorID != userID {
		return common.ErrNotAuthor
	}

	if err := s.ideaRepo.Delete(ctx, idea); err != nil {
		return err
	}

	s.invalidateList()
	return nil
}

// DeleteAny is the administrative delete: no ownership check.
func (s *IdeaService) DeleteAny(ctx context.Context, ideaID string) error {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return err
	}

	if err := s.ideaRepo.Delete(ctx, idea); err != nil {
		return err
	}

	s.invalidateList()
	return nil
}

// ListMy returns the ideas the caller authored.
func (s *IdeaService) ListMy(ctx context.Context, userID string) ([]dtos.IdeaResponse, error) {
	ideas, err := s.ideaRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toIdeaResponses(ideas), nil
}

// ApplyToTeam moves the caller from "not involved" to pending. Authors
// cannot apply to their own team, members cannot apply again, and a second
// application while one is pending is rejected rather than duplicated.
func (s *IdeaService) ApplyToTeam(ctx context.Context, userID, ideaID string) error {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return err
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	if idea.AuthorID == userID {
		return common.ErrAlreadyAuthor
	}
	if idea.HasMember(userID) {
		return common.ErrAlreadyMember
	}
	if idea.HasRequest(userID) {
		return common.ErrAlreadyRequested
	}

	idea.Requests = append(idea.Requests, *user)

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return err
	}

	s.metrics.MembershipEventsTotal.WithLabelValues("apply").Inc()
	s.invalidateList()
	return nil
}

// ApproveRequest is an author-only transition from pending to member. The
// requester is removed from the requests set and added to members in one
// aggregate save, so the two sets stay disjoint.
func (s *IdeaService) ApproveRequest(ctx context.Context, requesterID, approverID, ideaID string) error {
	idea, requester, err := s.loadRequestTarget(ctx, requesterID, approverID, ideaID)
	if err != nil {
		return err
	}

	idea.Requests = removeUserByID(idea.Requests, requesterID)
	idea.Members = append(idea.Members, *requester)

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return err
	}

	s.metrics.MembershipEventsTotal.WithLabelValues("approve").Inc()
	s.invalidateList()
	return nil
}

// DeclineRequest is an author-only transition from pending back to "not
// involved"; members are untouched.
func (s *IdeaService) DeclineRequest(ctx context.Context, requesterID, approverID, ideaID string) error {
	idea, _, err := s.loadRequestTarget(ctx, requesterID, approverID, ideaID)
	if err != nil {
		return err
	}

	idea.Requests = removeUserByID(idea.Requests, requesterID)

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return err
	}

	s.metrics.MembershipEventsTotal.WithLabelValues("decline").Inc()
	s.invalidateList()
	return nil
}

// LeaveTeam removes the caller from the members set. Leaving a team the
// caller is not part of is a no-op, not an error.
func (s *IdeaService) LeaveTeam(ctx context.Context, userID, ideaID string) error {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return err
	}

	idea.Members = removeUserByID(idea.Members, userID)

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return err
	}

	s.metrics.MembershipEventsTotal.WithLabelValues("leave").Inc()
	s.invalidateList()
	return nil
}

// GetRequests returns the pending applicants, author only, with private
// user fields stripped.
func (s *IdeaService) GetRequests(ctx context.Context, userID, ideaID string) ([]dtos.PublicUser, error) {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID != userID {
		return nil, common.ErrNotAuthor
	}

	return toPublicUsers(idea.Requests), nil
}

// InsertLink sets one of the three fixed progress-link slots, author only.
func (s *IdeaService) InsertLink(ctx context.Context, userID, ideaID string, slot int, url string) error {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return err
	}
	if idea.AuthorID != userID {
		return common.ErrNotAuthor
	}

	switch slot {
	case 1:
		idea.FirstLink = &url
	case 2:
		idea.SecondLink = &url
	case 3:
		idea.ThirdLink = &url
	default:
		return common.ErrInvalidSlot
	}

	if err := s.ideaRepo.SaveAggregate(ctx, idea); err != nil {
		return err
	}

	s.invalidateList()
	return nil
}

/* ---------- shared lookups ---------- */

func (s *IdeaService) loadIdea(ctx context.Context, ideaID string) (*gormModels.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("idea", ideaID)
		}
		return nil, err
	}
	return idea, nil
}

func (s *IdeaService) loadUser(ctx context.Context, userID string) (*gormModels.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", userID)
		}
		return nil, err
	}
	return user, nil
}

// loadRequestTarget validates the shared approve/decline preconditions:
// the approver must be the author, the requester must not be the author or
// a member, and a pending request must exist.
func (s *IdeaService) loadRequestTarget(ctx context.Context, requesterID, approverID, ideaID string) (*gormModels.Idea, *gormModels.User, error) {
	idea, err := s.loadIdea(ctx, ideaID)
	if err != nil {
		return nil, nil, err
	}
	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return nil, nil, err
	}

	if idea.AuthorID != approverID {
		return nil, nil, common.ErrNotAuthor
	}
	if requesterID == idea.AuthorID {
		return nil, nil, common.ErrAlreadyAuthor
	}
	if idea.HasMember(requesterID) {
		return nil, nil, common.ErrAlreadyMember
	}
	if !idea.HasRequest(requesterID) {
		return nil, nil, common.ErrNotInRequests
	}

	return idea, requester, nil
}

func (s *IdeaService) uploadImage(ctx context.Context, file dtos.ImageFile) (*common.UploadResult, error) {
	uploaded, err := s.uploader.UploadImage(ctx, file)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return uploaded, nil
}

func (s *IdeaService) invalidateList() {
	s.cache.Delete(string(constants.CacheKeyIdeaList))
}

// removeUserByID filters by id; removal of an absent user is a no-op.
// Index- or reference-based removal is deliberately not used here.
func removeUserByID(users []gormModels.User, id string) []gormModels.User {
	out := make([]gormModels.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
