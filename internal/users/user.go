package users

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrInvalidUser      = errors.New("invalid user data")
	ErrPasswordMismatch = errors.New("new passwords do not match")
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Username     *string   `json:"username"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	ZipCode      *string   `json:"zip_code"`
	Country      *string   `json:"country"`
	ProfileImage *string   `json:"profile_image"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserResponse is the public view of a user, returned by the /me endpoints.
type UserResponse struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Username     *string `json:"username"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	ProfileImage *string `json:"profile_image"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Phone:        u.Phone,
		Address:      u.Address,
		ZipCode:      u.ZipCode,
		Country:      u.Country,
		ProfileImage: u.ProfileImage,
	}
}

type UserCreate struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Username     *string `json:"username"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	ProfileImage *string `json:"profile_image"`
}

func (uc *UserCreate) Validate() error {
	uc.Email = strings.TrimSpace(uc.Email)
	if uc.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(uc.Email); err != nil {
		return errors.New("email is not valid")
	}
	if uc.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func (uc *UserCreate) HasCountry() bool {
	return uc.Country != nil && strings.TrimSpace(*uc.Country) != ""
}

func (uc *UserCreate) ToUser(passwordHash string) User {
	return User{
		Email:        uc.Email,
		PasswordHash: passwordHash,
		FirstName:    uc.FirstName,
		LastName:     uc.LastName,
		Username:     uc.Username,
		Phone:        uc.Phone,
		Address:      uc.Address,
		ZipCode:      uc.ZipCode,
		Country:      uc.Country,
		ProfileImage: uc.ProfileImage,
	}
}

// UserUpdate is a partial profile update, nil fields are left untouched.
type UserUpdate struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Username     *string `json:"username"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	ProfileImage *string `json:"profile_image"`
}

type ChangePassword struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (cp ChangePassword) Validate() error {
	if cp.OldPassword == "" || cp.NewPassword == "" {
		return errors.New("old and new password are required")
	}
	if cp.NewPassword != cp.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
