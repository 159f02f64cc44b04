package domain

// SendMessageCommand carries a message intent before validation.
// Sender is optional and defaults to SenderUser.
type SendMessageCommand struct {
	UserKey     string `json:"userKey"`
	Text        string `json:"text"`
	Sender      Sender `json:"sender"`
	ImageBase64 string `json:"imageBase64"`
}

// AdminMessageCommand is what an admin dashboard pushes through the realtime channel.
type AdminMessageCommand struct {
	UserKey     string `json:"userKey" validate:"required"`
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64"`
}

func (c AdminMessageCommand) ToSend() SendMessageCommand {
	return SendMessageCommand{
		UserKey:     c.UserKey,
		Text:        c.Text,
		Sender:      SenderAdmin,
		ImageBase64: c.ImageBase64,
	}
}
