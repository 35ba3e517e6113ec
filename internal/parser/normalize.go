package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseQuantityToken reads counts and day spans ("3", "3d", "3 days").
func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if token == "all" {
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	for _, suffix := range []string{"days", "day", "d"} {
		if strings.HasSuffix(token, suffix) {
			n := strings.TrimSuffix(token, suffix)
			if v, err := strconv.Atoi(n); err == nil && v >= 0 {
				return &Quantity{Raw: token, N: v, Unit: "days"}
			}
		}
	}
	return nil
}
