package telegram

// SendMessageRequest is the body of the sendMessage method
type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Message is the subset of the sent message the API echoes back
type Message struct {
	MessageID int64 `json:"message_id"`
	Date      int64 `json:"date"`
}

// APIResponse wraps every Bot API reply
type APIResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description,omitempty"`
	ErrorCode   int      `json:"error_code,omitempty"`
	Result      *Message `json:"result,omitempty"`
}
