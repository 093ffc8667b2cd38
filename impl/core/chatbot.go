package core

import (
	"fmt"
	"log/slog"

	"SmartShop/entity"
)

func (c *Core) ChatbotAnswer(sessionID string, req *entity.ChatbotRequest) (*entity.ChatbotResponse, error) {
	if c.chatbot == nil {
		return nil, fmt.Errorf("chatbot not initialized")
	}
	answer := c.chatbot.Engine(sessionID).Answer(req)
	if answer.NeedsInfo {
		c.log.With(
			slog.String("session", sessionID),
		).Debug("chatbot escalation offered")
	}
	return answer, nil
}

func (c *Core) ChatbotButtons() map[string]string {
	if c.chatbot == nil {
		return map[string]string{}
	}
	return c.chatbot.Engine("").AvailableButtons()
}
