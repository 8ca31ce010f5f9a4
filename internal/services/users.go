// users.go
//
// A content publishing site with a versioned schema and archive navigation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishdb.
// publishdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/publishdb/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 24 * time.Hour

// UserInput describes an account with a password login.
type UserInput struct {
	Name     string
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// CreateUser inserts a user and its password identity together.
func CreateUser(ctx context.Context, db *gorm.DB, in UserInput) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: in.Name, IsAdmin: in.IsAdmin}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		identity := models.PasswordIdentity{
			UserID:       user.ID,
			Username:     in.Username,
			Email:        strings.ToLower(strings.TrimSpace(in.Email)),
			PasswordHash: string(hash),
		}
		return tx.Create(&identity).Error
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CheckPassword verifies a login and returns the user it belongs to.
func CheckPassword(ctx context.Context, db *gorm.DB, username, password string) (models.User, error) {
	var identity models.PasswordIdentity
	err := db.WithContext(ctx).Preload("User").
		Where(&models.PasswordIdentity{Username: username}).
		First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidPassword
	}
	if err != nil {
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidPassword
	}
	if identity.User == nil {
		return models.User{}, fmt.Errorf("identity %d user: %w", identity.ID, ErrNotFound)
	}
	return *identity.User, nil
}

// IssueResetToken stores a fresh reset token for the identity with email.
func IssueResetToken(ctx context.Context, db *gorm.DB, email string, now time.Time) (string, error) {
	token := uuid.NewString()
	expires := now.Add(ResetTokenTTL).UTC()
	res := db.WithContext(ctx).Model(&models.PasswordIdentity{}).
		Where(&models.PasswordIdentity{Email: strings.ToLower(strings.TrimSpace(email))}).
		Updates(map[string]interface{}{"reset_token": token, "reset_expires_at": expires})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("identity %q: %w", email, ErrNotFound)
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(ctx context.Context, db *gorm.DB, token, password string, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var identity models.PasswordIdentity
		err := tx.Where("reset_token = ?", token).First(&identity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		if err != nil {
			return err
		}
		if identity.ResetExpiresAt == nil || !now.Before(*identity.ResetExpiresAt) {
			return ErrResetTokenInvalid
		}
		return tx.Model(&identity).Updates(map[string]interface{}{
			"password_hash":    string(hash),
			"reset_token":      nil,
			"reset_expires_at": nil,
		}).Error
	})
}
