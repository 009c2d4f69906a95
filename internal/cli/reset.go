package cli

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marisolfit/coachdesk/internal/db"
	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
	"github.com/marisolfit/coachdesk/internal/services"
)

// RunResetPasswordCommand resets a locked-out coach's password from the shell
// of the host running the database. It prints a temporary password once.
func RunResetPasswordCommand(dbPath string, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var coach models.Coach
	if err := database.Where("lower(trim(email)) = ?", normalizedEmail).First(&coach).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("coach %s not found", normalizedEmail)
		}
		return fmt.Errorf("load coach: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	coach.PasswordHash = string(passwordHash)
	if err := database.Save(&coach).Error; err != nil {
		return fmt.Errorf("update coach password: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password for %s: %s\n", coach.Email, temporaryPassword)
	fmt.Println("Ask the coach to sign in and change it right away.")

	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
