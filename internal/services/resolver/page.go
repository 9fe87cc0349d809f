package resolver

import (
	"html"
	"regexp"
	"strings"
)

var (
	metaTagRegex   = regexp.MustCompile(`(?is)<meta\s[^>]*>`)
	attributeRegex = regexp.MustCompile(`(?is)([a-z][a-z0-9:_-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

const (
	titleMetaKey  = "og:title"
	streamMetaKey = "twitter:player:stream"
)

// metaContent returns the decoded content attribute of the first meta tag whose
// name or property equals key
func metaContent(page, key string) (string, bool) {
	for _, tag := range metaTagRegex.FindAllString(page, -1) {
		attrs := map[string]string{}
		for _, m := range attributeRegex.FindAllStringSubmatch(tag, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			attrs[strings.ToLower(m[1])] = value
		}

		if !strings.EqualFold(attrs["name"], key) && !strings.EqualFold(attrs["property"], key) {
			continue
		}

		content, ok := attrs["content"]
		if !ok {
			continue
		}
		return strings.TrimSpace(html.UnescapeString(content)), true
	}
	return "", false
}

// isPageContentType reports whether a content type denotes a landing page rather than media
func isPageContentType(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	return strings.HasPrefix(contentType, "text/") || contentType == "application/xhtml+xml"
}
