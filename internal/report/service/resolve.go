package service

import (
	"strings"

	"delivery-report/internal/report/model"
)

// MatchColumn finds the header for an ordered candidate list.
// All candidates are tried for an exact match before any candidate is tried as a
// substring, so a later exact hit beats an earlier substring hit. Within a pass the
// first candidate wins, then the first header.
func MatchColumn(headers, candidates []string) (string, bool) {
	norm := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = NormalizeHeader(c); c != "" {
			norm = append(norm, c)
		}
	}
	for _, c := range norm {
		for _, h := range headers {
			if h == c {
				return h, true
			}
		}
	}
	for _, c := range norm {
		for _, h := range headers {
			if strings.Contains(h, c) {
				return h, true
			}
		}
	}
	return "", false
}

// Resolve maps every role to a normalized header. A header may serve several roles.
func Resolve(headers []string, aliases model.Aliases) model.Schema {
	cols := make(map[model.Role]string, len(model.Roles))
	for _, r := range model.Roles {
		if h, ok := MatchColumn(headers, aliases[r]); ok {
			cols[r] = h
		}
	}
	return model.NewSchema(cols)
}

// Validate checks that every required role resolved to a header present in headers.
// The error names all missing roles, each with the closest header when one is similar enough.
func Validate(schema model.Schema, headers []string, aliases model.Aliases) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []model.MissingColumn
	for _, r := range model.Required {
		if col, ok := schema.Column(r); ok {
			if _, found := present[col]; found {
				continue
			}
		}
		missing = append(missing, model.MissingColumn{
			Role:       r,
			Label:      r.Label(),
			Suggestion: suggestHeader(headers, aliases[r]),
		})
	}
	if len(missing) > 0 {
		return &model.MissingColumnsError{Missing: missing}
	}
	return nil
}
