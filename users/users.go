package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/jrsteele09/go-auth-dispatch/status"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id,omitempty"`          // Unique identifier for the user
	Email        string    `json:"email,omitempty"`       // User's email address, stored lower case
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	Firstname    string    `json:"firstname,omitempty"`   // First name of the user
	Lastname     string    `json:"lastname,omitempty"`    // Last name of the user
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered

	Active bool `json:"active"` // Active, inactive users are forced out of every client
	Editor bool `json:"editor"` // Editor, may create and change content
	Admin  bool `json:"admin"`  // Admin, may manage users
}

// NormalizeEmail trims and lower cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetPassword validates and hashes a new password.
func (u *User) SetPassword(password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// Status is the account state reported to clients on every authorised response.
func (u *User) Status() status.Signal {
	return status.Signal{Active: u.Active, Editor: u.Editor, Admin: u.Admin}
}

// Snapshot returns the client view of the user.
func (u *User) Snapshot() *sessions.User {
	return &sessions.User{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Editor:    u.Editor,
		Admin:     u.Admin,
	}
}
