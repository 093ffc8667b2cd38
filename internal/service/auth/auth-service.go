package auth

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	SetEmailVerified(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id, hash string) error
}

type Mailer interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
}

type Options struct {
	Secret     string
	BaseURL    string
	Sender     string
	LinkTTL    time.Duration
	SessionTTL time.Duration
}

type Service struct {
	repository Repository
	mailer     Mailer
	tokens     *TokenManager
	opts       Options
	log        *slog.Logger
}

func NewAuthService(repo Repository, mailer Mailer, opts Options, logger *slog.Logger) *Service {
	if opts.LinkTTL == 0 {
		opts.LinkTTL = time.Hour
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Service{
		repository: repo,
		mailer:     mailer,
		tokens:     NewTokenManager(opts.Secret),
		opts:       opts,
		log:        logger.With(sl.Module("auth-service")),
	}
}

func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

func (s *Service) Signup(ctx context.Context, req *entity.SignupRequest) (*entity.User, error) {
	if err := CheckPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	user := entity.NewUser(req.Username, req.Email, req.Role)

	existing, err := s.repository.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if existing != nil {
		return nil, entity.NewValidationError("Username already exists")
	}
	existing, err = s.repository.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if existing != nil {
		return nil, entity.NewValidationError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err = s.repository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, entity.NewValidationError("Username or email already registered")
		}
		return nil, entity.PersistenceError(err)
	}

	s.log.With(
		slog.String("user", user.Username),
		slog.String("role", user.Role),
	).Info("user registered")

	if err = s.sendLink(ctx, user, PurposeVerify); err != nil {
		return user, err
	}
	return user, nil
}

func (s *Service) sendLink(ctx context.Context, user *entity.User, purpose string) error {
	token, err := s.tokens.Issue(user.ID, purpose, s.opts.LinkTTL, Claims{Email: user.Email})
	if err != nil {
		return err
	}

	base := strings.TrimRight(s.opts.BaseURL, "/")
	var subject, link string
	switch purpose {
	case PurposeVerify:
		subject = "Verify Your Email"
		link = fmt.Sprintf("%s/api/v1/user/verify/%s", base, token)
	case PurposeReset:
		subject = "Password Reset Request"
		link = fmt.Sprintf("%s/api/v1/user/reset/%s", base, token)
	default:
		return fmt.Errorf("unknown link purpose %q", purpose)
	}

	msg := &entity.MailMessage{
		Subject: subject,
		Sender:  s.opts.Sender,
		To:      []string{user.Email},
		Body: fmt.Sprintf("To %s, visit the following link:\n%s\n\nIf you did not make this request then simply ignore this email.\n",
			linkAction(purpose), link),
	}
	if s.mailer == nil {
		return entity.NotificationError(errors.New("mail is not configured"))
	}
	if err = s.mailer.Send(ctx, msg); err != nil {
		s.log.With(
			slog.String("user", user.Username),
			sl.Err(err),
		).Error("send " + purpose + " mail")
		return entity.NotificationError(err)
	}
	return nil
}

func linkAction(purpose string) string {
	if purpose == PurposeReset {
		return "reset your password"
	}
	return "verify your email"
}

func (s *Service) userFromLink(ctx context.Context, token, purpose, invalid string) (*entity.User, error) {
	claims, err := s.tokens.Parse(token, purpose)
	if err != nil {
		return nil, entity.NewValidationError("The link is invalid or has expired.")
	}
	user, err := s.repository.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if user == nil || user.ID != claims.Subject {
		return nil, entity.NewValidationError(invalid)
	}
	return user, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userFromLink(ctx, token, PurposeVerify, "Invalid verification link.")
	if err != nil {
		return err
	}
	if err = s.repository.SetEmailVerified(ctx, user.ID); err != nil {
		return entity.PersistenceError(err)
	}
	s.log.With(slog.String("user", user.Username)).Info("email verified")
	return nil
}

// Login checks credentials and issues an access token. Unverified accounts
// cannot log in.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.LoginResult, error) {
	user, err := s.repository.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, entity.AuthorizationError("Invalid username or password")
	}
	if !user.EmailVerified {
		return nil, entity.AuthorizationError("Please verify your email before logging in.")
	}

	token, err := s.tokens.Issue(user.ID, PurposeAccess, s.opts.SessionTTL, Claims{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.With(slog.String("user", user.Username)).Info("user logged in")

	return &entity.LoginResult{Token: token, User: user.Auth()}, nil
}

// AuthenticateByToken resolves an access token to the user identity.
func (s *Service) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	claims, err := s.tokens.Parse(token, PurposeAccess)
	if err != nil {
		return nil, err
	}
	return &entity.UserAuth{
		ID:       claims.Subject,
		Username: claims.Name,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

// RequestReset mails a reset link. Unknown addresses are reported as not found.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	user, err := s.repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return entity.PersistenceError(err)
	}
	if user == nil {
		return entity.NotFoundError("Email address not found.")
	}
	return s.sendLink(ctx, user, PurposeReset)
}

func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userFromLink(ctx, token, PurposeReset, "Invalid reset link.")
	if err != nil {
		return err
	}
	if err = CheckPasswordComplexity(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err = s.repository.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return entity.PersistenceError(err)
	}
	s.log.With(slog.String("user", user.Username)).Info("password reset")
	return nil
}

func (s *Service) Me(ctx context.Context, auth *entity.UserAuth) (*entity.User, error) {
	if auth == nil {
		return nil, entity.AuthorizationError("not logged in")
	}
	user, err := s.repository.GetUserByID(ctx, auth.ID)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if user == nil {
		return nil, entity.NotFoundError("user " + auth.ID)
	}
	return user, nil
}
