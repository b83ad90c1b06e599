package services_test

import (
	"testing"
	"time"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	actor := adminActor()

	user, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan",
		Email:    "jordan@example.edu",
		Role:     "Viewer",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	if user.Password == "correct horse" {
		t.Error("Password stored in the clear")
	}

	loggedIn, tokens, err := services.Login(db, cfg, services.LoginInput{
		Username: "jordan",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Logged in as %q, expected %q", loggedIn.ID, user.ID)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Expected a full token pair")
	}

	claims, err := services.ParseAccessToken(cfg, tokens.AccessToken)
	if err != nil {
		t.Fatalf("Failed to parse access token: %v", err)
	}
	if claims.Subject != user.ID || claims.Username != "jordan" || claims.Role != "Viewer" {
		t.Errorf("Claims wrong: %+v", claims)
	}
}

// TestLoginFailuresAreIndistinguishable checks that a missing user and a bad
// password produce the same error.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	actor := adminActor()

	if _, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	}); err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	_, _, badPassword := services.Login(db, cfg, services.LoginInput{Username: "jordan", Password: "wrong"})
	_, _, noUser := services.Login(db, cfg, services.LoginInput{Username: "nobody", Password: "wrong"})

	requireKind(t, badPassword, types.KindAuthorization)
	requireKind(t, noUser, types.KindAuthorization)
	if badPassword.Error() != noUser.Error() {
		t.Errorf("Failure modes distinguishable: %q vs %q", badPassword.Error(), noUser.Error())
	}
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()

	if _, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	}); err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	_, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan", Email: "other@example.edu", Role: "Viewer", Password: "password123",
	})
	requireKind(t, err, types.KindConflict)

	_, err = services.RegisterUser(db, actor, services.RegisterInput{
		Username: "other", Email: "jordan@example.edu", Role: "Viewer", Password: "password123",
	})
	requireKind(t, err, types.KindConflict)
}

func TestRegisterRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.RegisterUser(db, viewerActor(), services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	requireKind(t, err, types.KindAuthorization)
}

// TestRefreshRotation checks that rotation issues a fresh pair and kills the
// presented token.
func TestRefreshRotation(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	actor := adminActor()

	if _, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	}); err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	_, tokens, err := services.Login(db, cfg, services.LoginInput{Username: "jordan", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}

	rotated, err := services.RefreshTokens(db, cfg, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Failed to rotate tokens: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Error("Expected a full rotated pair")
	}

	// The old refresh token no longer matches the stored one.
	_, err = services.RefreshTokens(db, cfg, tokens.RefreshToken)
	requireKind(t, err, types.KindAuthorization)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	_, err := services.RefreshTokens(db, cfg, "not-a-token")
	requireKind(t, err, types.KindAuthorization)
}

func TestLogoutKillsRefresh(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	actor := adminActor()

	user, err := services.RegisterUser(db, actor, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	_, tokens, err := services.Login(db, cfg, services.LoginInput{Username: "jordan", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}

	if err := services.Logout(db, types.Actor{ID: user.ID, Username: user.Username, Role: user.Role}); err != nil {
		t.Fatalf("Failed to log out: %v", err)
	}

	_, err = services.RefreshTokens(db, cfg, tokens.RefreshToken)
	requireKind(t, err, types.KindAuthorization)
}

// TestChangePassword checks the old-password gate and the session reset.
func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	admin := adminActor()

	user, err := services.RegisterUser(db, admin, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	self := types.Actor{ID: user.ID, Username: user.Username, Role: user.Role}

	err = services.ChangePassword(db, self, services.PasswordChange{
		OldPassword: "wrong", NewPassword: "battery staple",
	})
	requireKind(t, err, types.KindAuthorization)

	if err := services.ChangePassword(db, self, services.PasswordChange{
		OldPassword: "correct horse", NewPassword: "battery staple",
	}); err != nil {
		t.Fatalf("Failed to change password: %v", err)
	}

	if _, _, err := services.Login(db, cfg, services.LoginInput{Username: "jordan", Password: "correct horse"}); err == nil {
		t.Error("Old password still works")
	}
	if _, _, err := services.Login(db, cfg, services.LoginInput{Username: "jordan", Password: "battery staple"}); err != nil {
		t.Errorf("New password rejected: %v", err)
	}
}

// TestUpdateUserRoleGate checks that users edit their own contact fields but
// only admins change roles.
func TestUpdateUserRoleGate(t *testing.T) {
	db := setupTestDB(t)
	admin := adminActor()

	user, err := services.RegisterUser(db, admin, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	self := types.Actor{ID: user.ID, Username: user.Username, Role: user.Role}

	updated, err := services.UpdateUser(db, self, user.ID, services.UserUpdate{
		PhoneNumber: strPtr("555-0100"),
	})
	if err != nil {
		t.Fatalf("Self edit failed: %v", err)
	}
	if updated.PhoneNumber != "555-0100" {
		t.Errorf("Phone not updated: %q", updated.PhoneNumber)
	}

	_, err = services.UpdateUser(db, self, user.ID, services.UserUpdate{Role: strPtr(types.RoleAdmin)})
	requireKind(t, err, types.KindAuthorization)

	promoted, err := services.UpdateUser(db, admin, user.ID, services.UserUpdate{Role: strPtr(types.RoleAdmin)})
	if err != nil {
		t.Fatalf("Admin role change failed: %v", err)
	}
	if promoted.Role != types.RoleAdmin {
		t.Errorf("Role not updated: %q", promoted.Role)
	}
}

func TestListUsersSearch(t *testing.T) {
	db := setupTestDB(t)
	admin := adminActor()

	for _, name := range []string{"jordan", "jorge", "sam"} {
		if _, err := services.RegisterUser(db, admin, services.RegisterInput{
			Username: name, Email: name + "@example.edu", Role: "Viewer", Password: "correct horse",
		}); err != nil {
			t.Fatalf("Failed to register %s: %v", name, err)
		}
	}

	all, err := services.ListUsers(db, admin, "")
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 users, got %d", len(all))
	}

	matched, err := services.ListUsers(db, admin, "jor")
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("Expected 2 users matching 'jor', got %d", len(matched))
	}

	_, err = services.ListUsers(db, viewerActor(), "")
	requireKind(t, err, types.KindAuthorization)
}

func TestCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	admin := adminActor()

	user, err := services.RegisterUser(db, admin, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	self := types.Actor{ID: user.ID, Username: user.Username, Role: user.Role}

	got, err := services.CurrentUser(db, self)
	if err != nil {
		t.Fatalf("Failed to fetch current user: %v", err)
	}
	if got.ID != user.ID || got.Email != "jordan@example.edu" {
		t.Errorf("Wrong account: %+v", got)
	}

	// A deleted account cannot use a leftover token.
	if _, err := services.DeleteUser(db, admin, user.ID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	_, err = services.CurrentUser(db, self)
	requireKind(t, err, types.KindAuthorization)
}

func TestDeleteUserTwice(t *testing.T) {
	db := setupTestDB(t)
	admin := adminActor()

	user, err := services.RegisterUser(db, admin, services.RegisterInput{
		Username: "jordan", Email: "jordan@example.edu", Role: "Viewer", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	if _, err := services.DeleteUser(db, admin, user.ID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	_, err = services.DeleteUser(db, admin, user.ID)
	requireKind(t, err, types.KindInvalidState)
}
