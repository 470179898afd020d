package resolve

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkovacevic/github-profile-analyzer/internal/errors"
)

// profileURLPattern matches a GitHub profile URL with optional scheme and
// www prefix; the first path segment is the username.
var profileURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([a-zA-Z0-9-]+)`)

// EmailSearcher finds a username by email address. A miss is reported as
// ("", nil), not as an error.
type EmailSearcher interface {
	SearchUserByEmail(ctx context.Context, email string) (string, error)
}

// Resolver normalizes a free-form query (username, profile URL, or email
// address) into a canonical GitHub username.
type Resolver struct {
	searcher EmailSearcher
}

// NewResolver creates a resolver backed by the given email searcher.
func NewResolver(searcher EmailSearcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// Resolve extracts a username from query. Profile URLs yield the path
// segment; anything containing "@" is treated as an email search
// candidate (intentionally, even when it does not look like a valid
// email); everything else is returned as-is, existence to be validated
// by the subsequent user lookup.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)

	if match := profileURLPattern.FindStringSubmatch(query); match != nil {
		return match[1], nil
	}

	if strings.Contains(query, "@") {
		found, err := r.searcher.SearchUserByEmail(ctx, query)
		if err != nil {
			return "", err
		}
		if found == "" {
			return "", errors.NewNotFoundError(fmt.Sprintf("no GitHub user found with email: %s", query))
		}
		return found, nil
	}

	return query, nil
}
