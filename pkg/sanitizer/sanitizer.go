package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

const maxClientIDLength = 128

var reClientIDUnsafe = regexp.MustCompile(`[^A-Za-z0-9_\-.]+`)

var (
	idPipeline       = Pipeline{strings.TrimSpace}
	clientIDPipeline = Pipeline{strings.TrimSpace, stripClientIDUnsafe, truncate(maxClientIDLength)}
)

// NormalizeID trims a document id. Ids are otherwise opaque.
func NormalizeID(id string) string {
	return idPipeline.Apply(id)
}

// NormalizeClientID keeps letters, digits, '_', '-' and '.' so the id can be
// embedded in a storage key.
func NormalizeClientID(id string) string {
	return clientIDPipeline.Apply(id)
}

func stripClientIDUnsafe(s string) string {
	return reClientIDUnsafe.ReplaceAllString(s, "")
}

func truncate(n int) Strategy {
	return func(s string) string {
		if len(s) > n {
			return s[:n]
		}
		return s
	}
}
