package inbound

type SendRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SendResponse struct{}

func (SendResponse) Message() string { return "Message sent successfully" }
