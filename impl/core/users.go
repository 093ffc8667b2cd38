package core

import (
	"context"
	"fmt"

	"SmartShop/entity"
)

var errAuthUnavailable = fmt.Errorf("auth service not initialized")

func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if c.auth == nil {
		return nil, errAuthUnavailable
	}
	return c.auth.AuthenticateByToken(token)
}

func (c *Core) Signup(ctx context.Context, req *entity.SignupRequest) (*entity.User, error) {
	if c.auth == nil {
		return nil, errAuthUnavailable
	}
	return c.auth.Signup(ctx, req)
}

func (c *Core) VerifyEmail(ctx context.Context, token string) error {
	if c.auth == nil {
		return errAuthUnavailable
	}
	return c.auth.VerifyEmail(ctx, token)
}

func (c *Core) Login(ctx context.Context, username, password string) (*entity.LoginResult, error) {
	if c.auth == nil {
		return nil, errAuthUnavailable
	}
	return c.auth.Login(ctx, username, password)
}

func (c *Core) RequestReset(ctx context.Context, email string) error {
	if c.auth == nil {
		return errAuthUnavailable
	}
	return c.auth.RequestReset(ctx, email)
}

func (c *Core) ResetPassword(ctx context.Context, token, password string) error {
	if c.auth == nil {
		return errAuthUnavailable
	}
	return c.auth.ResetPassword(ctx, token, password)
}

func (c *Core) Me(ctx context.Context, auth *entity.UserAuth) (*entity.User, error) {
	if c.auth == nil {
		return nil, errAuthUnavailable
	}
	return c.auth.Me(ctx, auth)
}
