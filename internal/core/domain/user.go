package domain

import "strconv"

// User is an account holder. Most users arrive through Telegram (TelegramID
// set, no password); API-only users authenticate with a bcrypt password hash.
type User struct {
	UserID       int64   `json:"userID"`
	TelegramID   *int64  `json:"telegramID,omitempty"`
	Username     string  `json:"username"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	PasswordHash *string `json:"-"`
	AuditFields
}

// DisplayName renders a user the way the bot frontends do: @username when
// present, otherwise the real name, otherwise a user: placeholder.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name != "" {
		return name
	}
	return "user:" + strconv.FormatInt(u.UserID, 10)
}
