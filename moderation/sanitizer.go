package moderation

import "regexp"

// scriptBlock matches a complete <script ...>...</script> element, case-insensitive,
// across newlines. Unterminated tags and event-handler attributes are not covered.
var scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

// StripScripts removes script elements from user-supplied text.
func StripScripts(text string) string {
	if text == "" {
		return ""
	}
	return scriptBlock.ReplaceAllString(text, "")
}
