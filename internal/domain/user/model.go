package user

import "time"

type User struct {
	ID        int
	Email     string
	Password  string // хэш
	CreatedAt time.Time
}

// Credentials - тело запросов регистрации и входа.
type Credentials struct {
	Email    string `json:"email" format:"email" maxLength:"254"`
	Password string `json:"password" minLength:"1" maxLength:"72"`
}
