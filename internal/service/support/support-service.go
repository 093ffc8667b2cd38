package support

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	notifySubject = "New Customer Question"
	notifyTimeout = 30 * time.Second
)

var (
	ErrMissingFields = entity.NewValidationError("Please provide all required information (email, phone, and question).")
	ErrInvalidEmail  = entity.NewValidationError("Please provide a valid email address.")
	ErrInvalidPhone  = entity.NewValidationError("Please provide a valid phone number.")
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

type Repository interface {
	SaveQuestion(ctx context.Context, q *entity.CustomQuestion) error
	ListQuestions(ctx context.Context, status entity.QuestionStatus) ([]entity.CustomQuestion, error)
	UpdateQuestionStatus(ctx context.Context, id string, status entity.QuestionStatus) error
}

type Mailer interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
}

type Alerter interface {
	SendMessage(msg string)
}

type Service struct {
	repository Repository
	mailer     Mailer
	alerter    Alerter
	sender     string
	recipients []string
	wg         sync.WaitGroup
	log        *slog.Logger
}

func NewSupportService(repo Repository, mailer Mailer, sender, supportAddr string, logger *slog.Logger) *Service {
	if supportAddr == "" {
		supportAddr = sender
	}
	return &Service{
		repository: repo,
		mailer:     mailer,
		sender:     sender,
		recipients: []string{supportAddr},
		log:        logger.With(sl.Module("support-service")),
	}
}

func (s *Service) SetAlerter(alerter Alerter) {
	s.alerter = alerter
}

func ValidateQuestion(email, phone, question string) error {
	if email == "" || phone == "" || strings.TrimSpace(question) == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// SubmitQuestion records an escalated question. Notification runs in the
// background and never affects the result.
func (s *Service) SubmitQuestion(ctx context.Context, email, phone, question string) (*entity.CustomQuestion, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if err := ValidateQuestion(email, phone, question); err != nil {
		return nil, err
	}

	q := entity.NewCustomQuestion(email, phone, question)
	if err := s.repository.SaveQuestion(ctx, q); err != nil {
		s.log.With(
			sl.Err(err),
		).Error("save question")
		return nil, entity.PersistenceError(err)
	}

	s.log.With(
		slog.String("id", q.ID),
		slog.String("email", q.Email),
	).Info("question submitted")

	s.notify(q)

	return q, nil
}

// notify runs in the background, the caller never waits for mail or alerts.
func (s *Service) notify(q *entity.CustomQuestion) {
	body := fmt.Sprintf("New question from customer:\nEmail: %s\nPhone: %s\nQuestion: %s\n", q.Email, q.Phone, q.Question)

	if s.alerter == nil && s.mailer == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.alerter != nil {
			s.alerter.SendMessage(body)
		}
		if s.mailer == nil {
			return
		}

		msg := &entity.MailMessage{
			Subject: notifySubject,
			Sender:  s.sender,
			To:      s.recipients,
			Body:    body,
		}
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.log.With(
				slog.String("id", q.ID),
				sl.Err(entity.NotificationError(err)),
			).Error("failed to send email notification")
		}
	}()
}

// Wait blocks until pending notifications are done.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) ListQuestions(ctx context.Context, status string) ([]entity.CustomQuestion, error) {
	var st entity.QuestionStatus
	if status != "" {
		var ok bool
		if st, ok = entity.ParseQuestionStatus(status); !ok {
			return nil, entity.NewValidationError(fmt.Sprintf("unknown status %q", status))
		}
	}
	questions, err := s.repository.ListQuestions(ctx, st)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	return questions, nil
}

func (s *Service) SetQuestionStatus(ctx context.Context, id, status string) error {
	st, ok := entity.ParseQuestionStatus(status)
	if !ok {
		return entity.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}
	err := s.repository.UpdateQuestionStatus(ctx, id, st)
	if errors.Is(err, entity.ErrNotFound) {
		return err
	}
	if err != nil {
		return entity.PersistenceError(err)
	}
	return nil
}
