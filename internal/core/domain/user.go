package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("username must be 3-20 alphanumeric characters")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)

const (
	DefaultDisplayName = "사용자"
	MaxProfileFieldLen = 20
	MinHeight          = 100
	MaxHeight          = 300
)

type User struct {
	ID            string    `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Name          string    `json:"name" db:"name"`
	Gender        string    `json:"gender" db:"gender"`
	Birth         string    `json:"birth" db:"birth"`
	Height        int       `json:"height" db:"height"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LongestStreak int       `json:"longest_streak" db:"longest_streak"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernameRegex.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Username:  username,
		Name:      DefaultDisplayName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

// Profile is the editable part of a user. Height 0 means unset.
type Profile struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Birth  string `json:"birth"`
	Height int    `json:"height"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "required", "name is required")
	}
	fields := []struct{ name, value string }{
		{"name", p.Name}, {"gender", p.Gender}, {"birth", p.Birth},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(strings.TrimSpace(f.value)) > MaxProfileFieldLen {
			return NewValidationError(f.name, "max=20", f.name+" is too long (max 20 chars)")
		}
	}
	if p.Birth != "" {
		if _, err := ParseDate(p.Birth); err != nil {
			return NewValidationError("birth", "iso8601", "birth must be a valid YYYY-MM-DD date")
		}
	}
	if p.Height != 0 && (p.Height < MinHeight || p.Height > MaxHeight) {
		return NewValidationError("height", "range=100-300", "height must be between 100 and 300")
	}
	return nil
}

func (u *User) UpdateProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(p.Name)
	u.Gender = strings.TrimSpace(p.Gender)
	u.Birth = p.Birth
	u.Height = p.Height
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Gender: u.Gender, Birth: u.Birth, Height: u.Height}
}

func (u *User) UpdateStreak(s Streak) {
	u.CurrentStreak = s.Current
	u.LongestStreak = s.Longest
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Streak() Streak {
	return Streak{Current: u.CurrentStreak, Longest: u.LongestStreak}
}
