package user

import (
	"context"

	"SmartShop/entity"
)

type Core interface {
	Signup(ctx context.Context, req *entity.SignupRequest) (*entity.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, username, password string) (*entity.LoginResult, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Me(ctx context.Context, auth *entity.UserAuth) (*entity.User, error)
}
