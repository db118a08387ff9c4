package utils

import (
	"fmt"
	"net/url"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/initials/svg"

// DefaultAvatarURL derives a deterministic identicon URL from a display name,
// so the same name always resolves to the same default avatar.
func DefaultAvatarURL(name string) string {
	return fmt.Sprintf("%s?seed=%s", avatarBaseURL, url.QueryEscape(name))
}
