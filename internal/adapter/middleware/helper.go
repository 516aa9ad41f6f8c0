package middleware

import "strings"

// validReqID accepts 8..64 chars of [A-Za-z0-9_-], enough to cover UUIDs and
// the 32-hex ids this service issues.
func validReqID(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func buildKey(method, path, actorID, reqID string) string {
	var b strings.Builder
	b.WriteString("idemp:")
	b.WriteString(method)
	b.WriteByte(':')
	b.WriteString(path)
	b.WriteByte(':')
	b.WriteString(actorID)
	b.WriteByte(':')
	b.WriteString(reqID)
	return b.String()
}
