package types

import "strings"

// ContextUserKey holds the authenticated auth.Identity in the gin context.
const ContextUserKey = "user"

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// ParseOrigins merges the development defaults with the configured client
// URL and the comma separated extra origins, dropping duplicates.
func ParseOrigins(clientURL, extra string) []string {
	origins := make([]string, 0, len(defaultOrigins)+1)
	seen := make(map[string]bool)

	add := func(origin string) {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || seen[origin] {
			return
		}
		seen[origin] = true
		origins = append(origins, origin)
	}

	for _, origin := range defaultOrigins {
		add(origin)
	}

	add(clientURL)

	for _, origin := range strings.Split(extra, ",") {
		add(origin)
	}

	return origins
}
