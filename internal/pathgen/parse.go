package pathgen

import "strings"

// extractJSON digs the JSON payload out of a provider response that may be
// wrapped in prose or markdown code fences. Providers with native
// structured output return clean JSON, but nothing guarantees it; every
// call site parses defensively. Returns "" when no payload is found.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Prefer the body of the first code fence, if any.
	if start := strings.Index(s, "```"); start >= 0 {
		body := s[start+3:]
		body = strings.TrimPrefix(body, "json")
		if end := strings.Index(body, "```"); end >= 0 {
			s = strings.TrimSpace(body[:end])
		} else {
			s = strings.TrimSpace(body)
		}
	}

	// Trim any prose around the outermost object or array.
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	closer := byte('}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start = arrStart
		closer = ']'
	}
	if start < 0 {
		return ""
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
