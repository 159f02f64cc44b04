package domain

// User is a user key that owns at least one message.
type User struct {
	UserKey string `json:"userKey"`
	Email   string `json:"email"`
}

func NewUser(userKey string) User {
	return User{UserKey: userKey, Email: FromKey(userKey)}
}

// EmailValidation is the answer to an email check: the normalized address and its key.
type EmailValidation struct {
	Email   string `json:"email"`
	UserKey string `json:"userKey"`
	IsValid bool   `json:"isValid"`
}
