package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/db/repositories"
	"startup-hub/backend/internal/metrics"
	"startup-hub/backend/internal/models/dtos"
	gormModels "startup-hub/backend/internal/models/gorm"
)

// promauto registers on the default registry, so the registry is shared
// across the test binary.
var testMetrics = metrics.NewMetricsRegistry()

type mockUploader struct {
	uploadFn func(ctx context.Context, file dtos.ImageFile) (*common.UploadResult, error)
}

func (m *mockUploader) UploadImage(ctx context.Context, file dtos.ImageFile) (*common.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, file)
	}
	return &common.UploadResult{URL: "https://img.example/" + file.Name}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.User{}, &gormModels.Idea{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newIdeaService(t *testing.T, db *gorm.DB, uploader common.Uploader) *IdeaService {
	t.Helper()

	if uploader == nil {
		uploader = &mockUploader{}
	}
	return NewIdeaService(
		repositories.NewIdeaRepository(db),
		repositories.NewUserRepository(db),
		uploader,
		common.NewCacheService(60, 120),
		testMetrics,
	)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *gormModels.User {
	t.Helper()

	first := strings.Split(email, "@")[0]
	user := &gormModels.User{
		FirstName:   &first,
		Email:       email,
		Password:    "hashed",
		IsConfirmed: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedIdea(t *testing.T, db *gorm.DB, author *gormModels.User) *gormModels.Idea {
	t.Helper()

	idea := &gormModels.Idea{
		Name:        "Test Startup",
		Description: "A startup used in tests",
		AuthorID:    author.ID,
	}
	if err := db.Create(idea).Error; err != nil {
		t.Fatalf("failed to seed idea: %v", err)
	}
	return idea
}

func TestApplyToTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	reloaded, err := svc.GetRequests(ctx, author.ID, idea.ID)
	if err != nil {
		t.Fatalf("getRequests failed: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].ID != applicant.ID {
		t.Fatalf("expected one pending request from applicant, got %+v", reloaded)
	}
}

func TestApplyToTeamAuthorRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, author.ID, idea.ID); !errors.Is(err, common.ErrAlreadyAuthor) {
		t.Fatalf("expected ErrAlreadyAuthor, got %v", err)
	}
}

func TestApplyToTeamDuplicatePendingRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); !errors.Is(err, common.ErrAlreadyRequested) {
		t.Fatalf("expected ErrAlreadyRequested, got %v", err)
	}

	requests, err := svc.GetRequests(ctx, author.ID, idea.ID)
	if err != nil {
		t.Fatalf("getRequests failed: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected exactly one pending request, got %d", len(requests))
	}
}

func TestApplyToTeamMemberRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.ApproveRequest(ctx, applicant.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); !errors.Is(err, common.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestApproveRequestMovesExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.ApproveRequest(ctx, applicant.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	got, err := svc.GetIdea(ctx, idea.ID)
	if err != nil {
		t.Fatalf("getIdea failed: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].ID != applicant.ID {
		t.Fatalf("expected applicant as sole member, got %+v", got.Members)
	}

	requests, err := svc.GetRequests(ctx, author.ID, idea.ID)
	if err != nil {
		t.Fatalf("getRequests failed: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected requests to be empty after approve, got %d", len(requests))
	}

	// Replaying the approve must fail; the pending request is gone.
	if err := svc.ApproveRequest(ctx, applicant.ID, author.ID, idea.ID); !errors.Is(err, common.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember on replay, got %v", err)
	}
}

func TestApproveRequestNonAuthorRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	outsider := seedUser(t, db, "outsider@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if err := svc.ApproveRequest(ctx, applicant.ID, outsider.ID, idea.ID); !errors.Is(err, common.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
}

func TestApproveRequestWithoutPendingRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	stranger := seedUser(t, db, "stranger@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApproveRequest(ctx, stranger.ID, author.ID, idea.ID); !errors.Is(err, common.ErrNotInRequests) {
		t.Fatalf("expected ErrNotInRequests, got %v", err)
	}
}

func TestDeclineRequestLeavesMembersUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	member := seedUser(t, db, "member@test.dev")
	applicant := seedUser(t, db, "applicant@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, member.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.ApproveRequest(ctx, member.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	if err := svc.DeclineRequest(ctx, applicant.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	got, err := svc.GetIdea(ctx, idea.ID)
	if err != nil {
		t.Fatalf("getIdea failed: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].ID != member.ID {
		t.Fatalf("decline must not touch members, got %+v", got.Members)
	}

	requests, err := svc.GetRequests(ctx, author.ID, idea.ID)
	if err != nil {
		t.Fatalf("getRequests failed: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no pending requests after decline, got %d", len(requests))
	}

	// A declined applicant may apply again.
	if err := svc.ApplyToTeam(ctx, applicant.ID, idea.ID); err != nil {
		t.Fatalf("re-apply after decline failed: %v", err)
	}
}

func TestLeaveTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	member := seedUser(t, db, "member@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, member.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.ApproveRequest(ctx, member.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if err := svc.LeaveTeam(ctx, member.ID, idea.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	got, err := svc.GetIdea(ctx, idea.ID)
	if err != nil {
		t.Fatalf("getIdea failed: %v", err)
	}
	if len(got.Members) != 0 {
		t.Fatalf("expected empty members after leave, got %+v", got.Members)
	}

	// Leaving a team the user is not on is a no-op.
	if err := svc.LeaveTeam(ctx, member.ID, idea.ID); err != nil {
		t.Fatalf("leave of non-member should be a no-op, got %v", err)
	}
}

func TestGetRequestsNonAuthorRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	outsider := seedUser(t, db, "outsider@test.dev")
	idea := seedIdea(t, db, author)

	if _, err := svc.GetRequests(ctx, outsider.ID, idea.ID); !errors.Is(err, common.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
}

func TestCreateIdeaCooldown(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")

	req := dtos.CreateIdeaReq{Name: "First", Description: "desc"}
	if _, err := svc.CreateIdea(ctx, author.ID, req); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req.Name = "Second"
	_, err := svc.CreateIdea(ctx, author.ID, req)
	if err == nil {
		t.Fatal("expected rate-limited error on immediate second create")
	}

	var de *common.DomainError
	if !errors.As(err, &de) || de.Code != "RATE_LIMITED" {
		t.Fatalf("expected RATE_LIMITED domain error, got %v", err)
	}
	if !strings.Contains(de.Message, "Remaining time to use this feature:") {
		t.Fatalf("unexpected rate-limit message: %q", de.Message)
	}
}

func TestCreateIdeaUploadFailureDoesNotChargeCooldown(t *testing.T) {
	db := newTestDB(t)
	failing := &mockUploader{
		uploadFn: func(ctx context.Context, file dtos.ImageFile) (*common.UploadResult, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	svc := newIdeaService(t, db, failing)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")

	req := dtos.CreateIdeaReq{
		Name:        "With image",
		Description: "desc",
		Image:       &dtos.ImageFile{Name: "logo.png", Data: []byte{1, 2, 3}},
	}
	if _, err := svc.CreateIdea(ctx, author.ID, req); err == nil {
		t.Fatal("expected upload error")
	}

	var reloaded gormModels.User
	if err := db.First(&reloaded, "id = ?", author.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.StartupLimit != nil {
		t.Fatal("failed create must not set the creation cooldown")
	}

	var count int64
	if err := db.Model(&gormModels.Idea{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count ideas: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed create must persist nothing, found %d ideas", count)
	}
}

func TestEditIdeaHidesForeignIdeas(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	outsider := seedUser(t, db, "outsider@test.dev")
	idea := seedIdea(t, db, author)

	name := "Hijacked"
	_, err := svc.EditIdea(ctx, idea.ID, outsider.ID, dtos.EditIdeaPatch{Name: &name})
	if err == nil {
		t.Fatal("expected error editing a foreign idea")
	}

	var de *common.DomainError
	if !errors.As(err, &de) || de.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND (existence hiding), got %v", err)
	}
}

func TestEditIdeaCooldownAndPatch(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	idea := seedIdea(t, db, author)

	name := "Renamed"
	got, err := svc.EditIdea(ctx, idea.ID, author.ID, dtos.EditIdeaPatch{Name: &name})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got.Name != "Renamed" || got.Description != idea.Description {
		t.Fatalf("patch applied wrong fields: %+v", got)
	}
	if got.LastEdited == nil {
		t.Fatal("edit must stamp the last-edited timestamp")
	}

	desc := "again"
	if _, err := svc.EditIdea(ctx, idea.ID, author.ID, dtos.EditIdeaPatch{Description: &desc}); err == nil {
		t.Fatal("expected rate-limited error on immediate second edit")
	}
}

func TestDeleteIdeaAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	outsider := seedUser(t, db, "outsider@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.DeleteIdea(ctx, idea.ID, outsider.ID); !errors.Is(err, common.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if err := svc.DeleteIdea(ctx, idea.ID, author.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}

	if _, err := svc.GetIdea(ctx, idea.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestInsertLinkSlots(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	outsider := seedUser(t, db, "outsider@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.InsertLink(ctx, outsider.ID, idea.ID, 1, "https://x.dev"); !errors.Is(err, common.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}

	if err := svc.InsertLink(ctx, author.ID, idea.ID, 4, "https://x.dev"); !errors.Is(err, common.ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}

	if err := svc.InsertLink(ctx, author.ID, idea.ID, 2, "https://demo.dev"); err != nil {
		t.Fatalf("insertLink failed: %v", err)
	}

	got, err := svc.GetIdea(ctx, idea.ID)
	if err != nil {
		t.Fatalf("getIdea failed: %v", err)
	}
	if got.FirstLink != nil || got.SecondLink == nil || *got.SecondLink != "https://demo.dev" {
		t.Fatalf("invalid slot must leave the idea unchanged, got %+v", got)
	}
}

func TestListIdeasRedactsUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	member := seedUser(t, db, "member@test.dev")
	idea := seedIdea(t, db, author)

	if err := svc.ApplyToTeam(ctx, member.ID, idea.ID); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.ApproveRequest(ctx, member.ID, author.ID, idea.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	list, err := svc.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one idea, got %d", len(list))
	}

	got := list[0]
	if got.Author.ID != author.ID {
		t.Fatalf("expected author %s, got %s", author.ID, got.Author.ID)
	}
	if len(got.Members) != 1 || got.Members[0].ID != member.ID {
		t.Fatalf("expected member roster, got %+v", got.Members)
	}
}

func TestListIdeasCacheInvalidatedOnMutation(t *testing.T) {
	db := newTestDB(t)
	svc := newIdeaService(t, db, nil)
	ctx := context.Background()

	author := seedUser(t, db, "author@test.dev")
	seedIdea(t, db, author)

	first, err := svc.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one idea, got %d", len(first))
	}

	// A second idea written behind the cache is invisible until invalidation.
	seedIdea(t, db, author)
	cached, err := svc.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected cached listing of one idea, got %d", len(cached))
	}

	link := "https://demo.dev"
	if err := svc.InsertLink(ctx, author.ID, first[0].ID, 1, link); err != nil {
		t.Fatalf("insertLink failed: %v", err)
	}

	fresh, err := svc.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected invalidated listing of two ideas, got %d", len(fresh))
	}
}
