package fileserver

import (
	"sort"
	"strconv"
	"strings"
)

// acceptedCoding is one ranked entry from a parsed Accept-Encoding
// header.
type acceptedCoding struct {
	name   string
	weight float64
	order  int
}

// parseAcceptEncoding splits an Accept-Encoding header on commas,
// parses "name[;q=weight]" with weight defaulting to 1.0, discards
// weight-0 entries, and sorts descending by weight preserving input
// order on ties. "identity" and "*" are parsed but never acted upon by
// the caller (they're filtered out of the backend lookup, not here, so
// a caller inspecting the raw ranked list still sees them).
func parseAcceptEncoding(header string) []acceptedCoding {
	if header == "" {
		return nil
	}

	tokens := strings.Split(header, ",")
	codings := make([]acceptedCoding, 0, len(tokens))

	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		name := tok
		weight := 1.0

		if idx := strings.IndexByte(tok, ';'); idx >= 0 {
			name = strings.TrimSpace(tok[:idx])
			params := tok[idx+1:]
			for _, param := range strings.Split(params, ";") {
				param = strings.TrimSpace(param)
				key, value, ok := strings.Cut(param, "=")
				if !ok {
					continue
				}
				if strings.TrimSpace(key) != "q" {
					continue
				}
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
					weight = parsed
				}
			}
		}

		if weight <= 0 {
			continue
		}

		codings = append(codings, acceptedCoding{
			name:   strings.ToLower(name),
			weight: weight,
			order:  i,
		})
	}

	sort.SliceStable(codings, func(i, j int) bool {
		return codings[i].weight > codings[j].weight
	})

	return codings
}
