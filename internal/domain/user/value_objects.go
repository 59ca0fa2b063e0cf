package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrEmptyName       = errors.New("name cannot be empty")
)

const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) String() string {
	return e.value
}

// Matches compares against a raw address the way the booking owner check does.
func (e Email) Matches(other string) bool {
	return strings.EqualFold(e.value, strings.TrimSpace(other))
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

type Profile struct {
	FirstName string
	LastName  string
	Phone     string
}

func NewProfile(firstName, lastName, phone string) (Profile, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Profile{}, ErrEmptyName
	}
	return Profile{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     strings.TrimSpace(phone),
	}, nil
}

func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
