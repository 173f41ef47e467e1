package store

import (
	"context"
	"testing"

	"inkwell/internal/models"
)

func TestUserCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	t.Cleanup(func() {
		cleanUsers(t, db, "store-user@test.local")
	})

	user, err := s.Create(ctx, "store-user@test.local", "correct horse", "store-user", models.RoleReader)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password stored in plain text")
	}
	if user.Role != models.RoleReader {
		t.Errorf("role = %q, want reader", user.Role)
	}

	if !s.CheckPassword(user, "correct horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(user, "wrong horse") {
		t.Error("wrong password accepted")
	}

	byEmail, err := s.FindByEmail(ctx, "store-user@test.local")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("find by email returned %+v", byEmail)
	}

	byName, err := s.FindByDisplayName(ctx, "store-user")
	if err != nil {
		t.Fatalf("find by display name: %v", err)
	}
	if byName == nil || byName.ID != user.ID {
		t.Errorf("find by display name returned %+v", byName)
	}
}

func TestUserFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	user, err := s.FindByEmail(ctx, "nobody@test.local")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for a missing user, got %+v", user)
	}
}
