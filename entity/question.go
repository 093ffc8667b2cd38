package entity

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type QuestionStatus string

const (
	QuestionPending  QuestionStatus = "Pending"
	QuestionAnswered QuestionStatus = "Answered"
	QuestionClosed   QuestionStatus = "Closed"
)

func ParseQuestionStatus(s string) (QuestionStatus, bool) {
	switch QuestionStatus(s) {
	case QuestionPending, QuestionAnswered, QuestionClosed:
		return QuestionStatus(s), true
	}
	return "", false
}

// CustomQuestion is a chatbot question escalated to human support.
type CustomQuestion struct {
	ID        string         `json:"id" bson:"_id"`
	Email     string         `json:"email" bson:"email"`
	Phone     string         `json:"phone" bson:"phone"`
	Question  string         `json:"question" bson:"question"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Status    QuestionStatus `json:"status" bson:"status"`
}

func NewCustomQuestion(email, phone, question string) *CustomQuestion {
	return &CustomQuestion{
		ID:        uuid.NewString(),
		Email:     email,
		Phone:     phone,
		Question:  question,
		CreatedAt: time.Now().UTC(),
		Status:    QuestionPending,
	}
}

// QuestionRequest is validated by the support service, Bind only trims.
type QuestionRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Question string `json:"question"`
}

func (q *QuestionRequest) Bind(_ *http.Request) error {
	q.Email = strings.TrimSpace(q.Email)
	q.Phone = strings.TrimSpace(q.Phone)
	q.Question = strings.TrimSpace(q.Question)
	return nil
}

type QuestionStatusRequest struct {
	Status string `json:"status"`
}

func (q *QuestionStatusRequest) Bind(_ *http.Request) error {
	q.Status = strings.TrimSpace(q.Status)
	return nil
}
