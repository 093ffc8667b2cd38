package support

import (
	"context"

	"SmartShop/entity"
)

type Core interface {
	SubmitQuestion(ctx context.Context, email, phone, question string) (*entity.CustomQuestion, error)
	ListQuestions(ctx context.Context, status string) ([]entity.CustomQuestion, error)
	SetQuestionStatus(ctx context.Context, id, status string) error
}
