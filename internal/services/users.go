package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the fields accepted when registering a user.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Role        string `json:"role" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate carries the optional fields of a profile edit.
type UserUpdate struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Role        *string `json:"role"`
}

// PasswordChange carries a password rotation request.
type PasswordChange struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// TokenPair is the credential set issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthClaims is the JWT payload shared by access and refresh tokens.
type AuthClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func signToken(userID, username, role, secret string, ttl time.Duration) (string, error) {
	claims := AuthClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken validates an access token and returns its claims.
func ParseAccessToken(cfg *config.Config, tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.AccessTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, types.Authorization("Invalid or expired token")
	}
	return claims, nil
}

func issueTokens(db *gorm.DB, cfg *config.Config, user *models.User) (*TokenPair, error) {
	access, err := signToken(user.ID, user.Username, user.Role, cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, types.Internal("Token issuance failed")
	}
	refresh, err := signToken(user.ID, user.Username, user.Role, cfg.RefreshTokenSecret, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, types.Internal("Token issuance failed")
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("refresh_token", refresh).Error; err != nil {
		return nil, storeErr(err, "Updating user session")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RegisterUser creates an operator account. Usernames and emails are unique
// among active users.
func RegisterUser(db *gorm.DB, actor types.Actor, in RegisterInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}

	var existing models.User
	err := db.Where("(username = ? OR email = ?) AND is_active = ?", in.Username, in.Email, true).
		First(&existing).Error
	if err == nil {
		return nil, types.Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "Fetching user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.Internal("Password hashing failed")
	}

	user := models.User{
		Username:    in.Username,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Role:        in.Role,
		Password:    string(hash),
		IsActive:    true,
		CreatedBy:   actor.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, storeErr(err, "Adding user")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntityUser,
		EntityID:    user.ID,
		EntityName:  user.Username,
		Actor:       actor,
		Description: fmt.Sprintf("User %q registered with role %q", user.Username, user.Role),
	})
	return &user, nil
}

// Login verifies the credential pair and issues a token pair. Credential
// failures are deliberately indistinguishable.
func Login(db *gorm.DB, cfg *config.Config, in LoginInput) (*models.User, *TokenPair, error) {
	var user models.User
	err := db.Where("username = ? AND is_active = ?", in.Username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, types.Authorization("Invalid username or password")
		}
		return nil, nil, storeErr(err, "Fetching user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, nil, types.Authorization("Invalid username or password")
	}

	tokens, err := issueTokens(db, cfg, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, tokens, nil
}

// RefreshTokens rotates a token pair. The presented refresh token must match
// the one stored for the user, so a stolen token dies on first rotation.
func RefreshTokens(db *gorm.DB, cfg *config.Config, refreshToken string) (*TokenPair, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, types.Authorization("Invalid or expired token")
	}

	var user models.User
	err = db.Where("id = ? AND is_active = ?", claims.Subject, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Authorization("Invalid or expired token")
		}
		return nil, storeErr(err, "Fetching user")
	}
	if user.RefreshToken != refreshToken {
		return nil, types.Authorization("Invalid or expired token")
	}

	return issueTokens(db, cfg, &user)
}

// Logout clears the stored refresh token, invalidating future rotations.
func Logout(db *gorm.DB, actor types.Actor) error {
	if err := db.Model(&models.User{}).Where("id = ?", actor.ID).Update("refresh_token", "").Error; err != nil {
		return storeErr(err, "Logging out")
	}
	return nil
}

// ChangePassword rotates the actor's own password after verifying the old
// one. The ledger entry records the event but never any password material.
func ChangePassword(db *gorm.DB, actor types.Actor, in PasswordChange) error {
	user, err := FindUser(db, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)) != nil {
		return types.Authorization("Invalid username or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return types.Internal("Password hashing failed")
	}
	updates := map[string]interface{}{
		"password":      string(hash),
		"refresh_token": "",
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return storeErr(err, "Updating password")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "changed password",
		EntityType:  models.EntityUser,
		EntityID:    user.ID,
		EntityName:  user.Username,
		Actor:       actor,
		Description: fmt.Sprintf("User %q changed their password", user.Username),
	})
	return nil
}

// UpdateUser applies a partial profile edit. Role changes are admin-only;
// users may edit their own contact fields.
func UpdateUser(db *gorm.DB, actor types.Actor, id string, in UserUpdate) (*models.User, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	if id != actor.ID && !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	user, err := FindUser(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.Email != nil && *in.Email != user.Email {
		var other models.User
		err := db.Where("email = ? AND is_active = ? AND id <> ?", *in.Email, true, user.ID).First(&other).Error
		if err == nil {
			return nil, types.Conflict("User already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeErr(err, "Fetching user")
		}
		updates["email"] = *in.Email
		changes["email"] = Change{From: user.Email, To: *in.Email}
		user.Email = *in.Email
	}
	if in.PhoneNumber != nil && *in.PhoneNumber != user.PhoneNumber {
		updates["phone_number"] = *in.PhoneNumber
		changes["phoneNumber"] = Change{From: user.PhoneNumber, To: *in.PhoneNumber}
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil && *in.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, types.Authorization("Admin access required")
		}
		updates["role"] = *in.Role
		changes["role"] = Change{From: user.Role, To: *in.Role}
		user.Role = *in.Role
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating user")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityUser,
		EntityID:    user.ID,
		EntityName:  user.Username,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("User %q edited", user.Username),
	})
	return user, nil
}

// DeleteUser soft-deletes an operator account and invalidates its session.
func DeleteUser(db *gorm.DB, actor types.Actor, id string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	user, err := FindUser(db, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, types.InvalidState("User already deleted")
	}

	updates := map[string]interface{}{
		"is_active":     false,
		"refresh_token": "",
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting user")
	}
	user.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityUser,
		EntityID:   user.ID,
		EntityName: user.Username,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("User %q removed", user.Username),
	})
	return user, nil
}

// ListUsers returns active operator accounts, optionally narrowed by a
// username substring.
func ListUsers(db *gorm.DB, actor types.Actor, search string) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	q := db.Where("is_active = ?", true)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}
	var users []models.User
	if err := q.Order("username").Find(&users).Error; err != nil {
		return nil, storeErr(err, "Fetching users")
	}
	return users, nil
}

// CurrentUser returns the account behind the presented token.
func CurrentUser(db *gorm.DB, actor types.Actor) (*models.User, error) {
	user, err := FindUser(db, actor.ID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, types.Authorization("Account disabled")
	}
	return user, nil
}
