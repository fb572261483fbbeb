package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT environment variable.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// hashID derives a short salted digest of a Telegram identifier. The prefix
// keeps user and chat hashes from colliding for the same numeric ID. Eight
// hex characters are enough to tell log entries apart.
func hashID(prefix string, id int64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%s", prefix, id, hashSalt))
	return hex.EncodeToString(sum[:])[:8]
}

// HashUserID creates a privacy-preserving hash of a Telegram user ID so a
// user's queries can be correlated without exposing the actual ID.
func HashUserID(userID int64) string {
	return hashID("user", userID)
}

// HashChatID creates a privacy-preserving hash of a chat ID.
func HashChatID(chatID int64) string {
	return hashID("chat", chatID)
}

// SanitizeText redacts message text for logging. The leading token is kept,
// truncated to currency-code length plus a little slack, and the rest is
// reduced to the total length.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	first, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	if len(first) > 6 {
		first = first[:6]
	}
	return fmt.Sprintf("%s <%d chars>", first, len(text))
}
