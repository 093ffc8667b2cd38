package entity

// ChatbotRequest is the inbound chat widget payload; either field may be empty.
type ChatbotRequest struct {
	Message  string `json:"message"`
	ButtonId string `json:"button_id"`
}

type ChatbotResponse struct {
	Response         string `json:"response"`
	NeedsInfo        bool   `json:"needs_info,omitempty"`
	OriginalQuestion string `json:"original_question,omitempty"`
}
