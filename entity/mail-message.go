package entity

// MailMessage represents a message to be sent via email.
type MailMessage struct {
	Subject string   `json:"subject"`
	Sender  string   `json:"sender"`
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Body    string   `json:"body"`
}
