package entity

import (
	"net/http"
	"strings"
	"time"

	"SmartShop/internal/lib/validate"

	"github.com/google/uuid"
)

const (
	ClientRole = "client"
	SellerRole = "seller"
)

type User struct {
	ID            string    `json:"id" bson:"_id"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          string    `json:"role" bson:"role"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

func NewUser(username, email, role string) *User {
	return &User{
		ID:        uuid.NewString(),
		Username:  strings.TrimSpace(username),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

func (u *User) IsSeller() bool {
	return u.Role == SellerRole
}

func (u *User) IsClient() bool {
	return u.Role == ClientRole
}

func (u *User) Auth() *UserAuth {
	return &UserAuth{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=client seller"`
}

func (s *SignupRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Bind(_ *http.Request) error {
	return validate.Struct(l)
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ResetRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

type NewPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func (p *NewPasswordRequest) Bind(_ *http.Request) error {
	return validate.Struct(p)
}
