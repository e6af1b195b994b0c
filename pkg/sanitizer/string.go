package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var reMarkupTag = regexp.MustCompile(`<[^>]*>`)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// StripTags removes markup tags, e.g. the <b> and <div> wrappers providers
// put in step instructions.
func StripTags(s string) string {
	return TrimAndNormalize(reMarkupTag.ReplaceAllString(s, " "))
}

// ReplaceFold replaces every case-insensitive occurrence of old with repl.
func ReplaceFold(s, old, repl string) string {
	if old == "" {
		return s
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(old))
	return re.ReplaceAllLiteralString(s, repl)
}
