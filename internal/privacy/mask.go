package privacy

import (
	"regexp"
	"strings"
)

var (
	phoneRe = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	// The local-part class includes '*' so already-masked addresses match as a
	// whole and re-masking leaves them unchanged.
	emailRe = regexp.MustCompile(`[a-zA-Z0-9*_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
)

// MaskText redacts phone-number and email shaped substrings before the text
// is sent to any external backend. Phone numbers keep their last four digits;
// email local parts keep their first and last character when longer than two.
// Text without matches is returned unchanged.
func MaskText(text string) string {
	text = phoneRe.ReplaceAllStringFunc(text, maskPhone)
	text = emailRe.ReplaceAllStringFunc(text, maskEmail)
	return text
}

func maskPhone(number string) string {
	return "***-***-" + number[len(number)-4:]
}

func maskEmail(email string) string {
	local, domain, _ := strings.Cut(email, "@")
	var masked string
	if len(local) <= 2 {
		masked = strings.Repeat("*", len(local))
	} else {
		masked = local[:1] + "***" + local[len(local)-1:]
	}
	return masked + "@" + domain
}
