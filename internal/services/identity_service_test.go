package services

import (
	"context"
	"errors"
	"testing"
)

func TestIdentityService_Resolve_CreatesOnFirstSight(t *testing.T) {
	repo := newMemoryRepository()
	service := NewIdentityService(repo, testLogger())
	ctx := context.Background()

	identity := ProviderIdentity{
		SubjectID:   "subject-42",
		DisplayName: "Alex",
		Emails:      []string{"alex@example.com", "alex@other.example.com"},
	}

	user, err := service.Resolve(ctx, identity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if user.ID == "" {
		t.Error("expected a generated user id")
	}
	if user.SubjectID != "subject-42" {
		t.Errorf("expected subject id preserved, got %s", user.SubjectID)
	}
	if user.Email != "alex@example.com" {
		t.Errorf("expected primary email, got %s", user.Email)
	}
	if user.MaxTypingSpeed != 0 || user.AverageTypingSpeed != 0 {
		t.Errorf("expected zero-valued aggregates, got (%v, %v)", user.MaxTypingSpeed, user.AverageTypingSpeed)
	}
}

func TestIdentityService_Resolve_ReturnsExistingUserUnchanged(t *testing.T) {
	repo := newMemoryRepository()
	service := NewIdentityService(repo, testLogger())
	ctx := context.Background()

	first, err := service.Resolve(ctx, ProviderIdentity{
		SubjectID:   "subject-42",
		DisplayName: "Alex",
		Emails:      []string{"alex@example.com"},
	})
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	// Repeat login with updated profile fields: the stored user is
	// returned unchanged (create-once, no profile sync).
	second, err := service.Resolve(ctx, ProviderIdentity{
		SubjectID:   "subject-42",
		DisplayName: "Alexandra",
		Emails:      []string{"new@example.com"},
	})
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the same user, got %s and %s", first.ID, second.ID)
	}
	if second.DisplayName != "Alex" || second.Email != "alex@example.com" {
		t.Errorf("expected profile fields unchanged, got %s / %s", second.DisplayName, second.Email)
	}
}

func TestIdentityService_Resolve_SubjectIDIsTheSoleKey(t *testing.T) {
	repo := newMemoryRepository()
	service := NewIdentityService(repo, testLogger())
	ctx := context.Background()

	// Two distinct identities sharing a display name must become two users
	a, err := service.Resolve(ctx, ProviderIdentity{SubjectID: "subject-a", DisplayName: "Sam"})
	if err != nil {
		t.Fatalf("Resolve a failed: %v", err)
	}
	b, err := service.Resolve(ctx, ProviderIdentity{SubjectID: "subject-b", DisplayName: "Sam"})
	if err != nil {
		t.Fatalf("Resolve b failed: %v", err)
	}

	if a.ID == b.ID {
		t.Error("expected two distinct users for two distinct subject ids")
	}
}

func TestIdentityService_Resolve_RejectsEmptySubjectID(t *testing.T) {
	repo := newMemoryRepository()
	service := NewIdentityService(repo, testLogger())

	_, err := service.Resolve(context.Background(), ProviderIdentity{DisplayName: "Nobody"})
	if !errors.Is(err, ErrIdentityIncomplete) {
		t.Fatalf("expected ErrIdentityIncomplete, got %v", err)
	}
}

func TestIdentityService_CurrentUser_FreshRead(t *testing.T) {
	repo := newMemoryRepository()
	service := NewIdentityService(repo, testLogger())
	ctx := context.Background()

	user, err := service.Resolve(ctx, ProviderIdentity{SubjectID: "subject-42", DisplayName: "Alex"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Mutate stored aggregates behind the session's back; the next
	// per-request read must observe the new values.
	if err := repo.User().UpdateTypingStats(ctx, user.ID, 90, 75); err != nil {
		t.Fatalf("UpdateTypingStats failed: %v", err)
	}

	current, err := service.CurrentUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if current.MaxTypingSpeed != 90 || current.AverageTypingSpeed != 75 {
		t.Errorf("expected fresh aggregates (90, 75), got (%v, %v)", current.MaxTypingSpeed, current.AverageTypingSpeed)
	}

	if _, err := service.CurrentUser(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
