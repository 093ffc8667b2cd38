package chatbot

import "SmartShop/entity"

type Core interface {
	ChatbotAnswer(sessionID string, req *entity.ChatbotRequest) (*entity.ChatbotResponse, error)
	ChatbotButtons() map[string]string
}
