package response

type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Ok(data interface{}) Response {
	return Response{
		Data:    data,
		Success: true,
	}
}

func Message(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

func Error(msg string) Response {
	return Response{
		Success: false,
		Error:   msg,
	}
}
