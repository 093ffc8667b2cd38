package chatbot

import (
	"strings"

	"SmartShop/entity"
)

const (
	PromptText     = "Please enter a message or select an option."
	EscalationText = "I don't have information about that. Would you like to submit your question to our customer service team?"
)

// Answer resolves one chat widget request. A known button wins, an unknown
// one falls through to the message.
func (e *Engine) Answer(req *entity.ChatbotRequest) *entity.ChatbotResponse {
	message := strings.TrimSpace(req.Message)
	buttonID := strings.TrimSpace(req.ButtonId)

	if message == "" && buttonID == "" {
		return &entity.ChatbotResponse{Response: PromptText}
	}

	if buttonID != "" {
		if text, ok := e.ButtonResponse(buttonID); ok {
			return &entity.ChatbotResponse{Response: text}
		}
		if message == "" {
			return &entity.ChatbotResponse{Response: PromptText}
		}
	}

	reply := e.Respond(message)
	if reply.NeedsEscalation {
		return &entity.ChatbotResponse{
			Response:         EscalationText,
			NeedsInfo:        true,
			OriginalQuestion: req.Message,
		}
	}
	return &entity.ChatbotResponse{Response: reply.Text}
}
