package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
)

// TelegramUser is the user payload embedded in WebApp init data.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ValidateTelegramInitData verifies the HMAC of a Telegram WebApp init data
// string against the bot token, per the Bot API login widget scheme: the
// check string is every key=value pair except hash, sorted by key and joined
// with newlines, signed with HMAC-SHA256 under a secret derived from the bot
// token keyed by the literal "WebAppData".
func ValidateTelegramInitData(initData, botToken string) (url.Values, error) {
	if initData == "" {
		return nil, fmt.Errorf("%w: missing init data", apperrors.ErrValidation)
	}
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed init data", apperrors.ErrValidation)
	}
	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, fmt.Errorf("%w: missing hash", apperrors.ErrValidation)
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	checkString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secretKey := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(checkString))
	calculatedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calculatedHash), []byte(receivedHash)) {
		return nil, fmt.Errorf("%w: invalid hash", apperrors.ErrValidation)
	}
	return values, nil
}

// ExtractTelegramUser decodes the user JSON field of validated init data.
func ExtractTelegramUser(values url.Values) (*TelegramUser, error) {
	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, fmt.Errorf("%w: missing user payload", apperrors.ErrValidation)
	}
	var user TelegramUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("%w: invalid user payload", apperrors.ErrValidation)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user payload missing id", apperrors.ErrValidation)
	}
	return &user, nil
}
