package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mortan11/app-prompts/config"
	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

const resetTokenLifetime = 60 * time.Minute

var ErrResetTokenInvalid = errors.New("reset link is invalid or has expired")

// RequestPasswordReset issues a reset token for the account registered under
// email and mails the reset link. An unknown email is not an error: callers
// answer identically either way to avoid user enumeration.
func RequestPasswordReset(cfg *config.Config, email string) error {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	prt := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(resetTokenLifetime),
	}
	if err := database.DB.Create(prt).Error; err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", cfg.BaseURL, token)
	SendResetEmail(cfg, user.Email, link)

	return nil
}

// ValidateResetToken reports whether a token exists, is unused and unexpired.
func ValidateResetToken(token string) bool {
	var prt models.PasswordResetToken
	if err := database.DB.Where("token = ?", token).First(&prt).Error; err != nil {
		return false
	}
	return !prt.Used && prt.ExpiresAt.After(time.Now().UTC())
}

// ResetPassword sets a new password for the token's user and marks the token
// used, both in one transaction.
func ResetPassword(token, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var userID uint
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var prt models.PasswordResetToken
		if err := tx.Where("token = ?", token).First(&prt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetTokenInvalid
			}
			return err
		}
		if prt.Used || prt.ExpiresAt.Before(time.Now().UTC()) {
			return ErrResetTokenInvalid
		}

		if err := tx.Model(&models.User{}).Where("id = ?", prt.UserID).
			Update("password", string(hashedPassword)).Error; err != nil {
			return err
		}

		userID = prt.UserID
		return tx.Model(&prt).Update("used", true).Error
	})
	if err != nil {
		return err
	}

	InvalidateUserCache(userID)
	return nil
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
