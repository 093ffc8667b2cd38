package core

import (
	"context"
	"fmt"

	"SmartShop/entity"
)

func (c *Core) SubmitQuestion(ctx context.Context, email, phone, question string) (*entity.CustomQuestion, error) {
	if c.support == nil {
		return nil, fmt.Errorf("support service not initialized")
	}
	return c.support.SubmitQuestion(ctx, email, phone, question)
}

func (c *Core) ListQuestions(ctx context.Context, status string) ([]entity.CustomQuestion, error) {
	if c.support == nil {
		return nil, fmt.Errorf("support service not initialized")
	}
	return c.support.ListQuestions(ctx, status)
}

func (c *Core) SetQuestionStatus(ctx context.Context, id, status string) error {
	if c.support == nil {
		return fmt.Errorf("support service not initialized")
	}
	return c.support.SetQuestionStatus(ctx, id, status)
}
