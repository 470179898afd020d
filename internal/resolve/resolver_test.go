package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacevic/github-profile-analyzer/internal/errors"
)

// fakeSearcher is a canned email lookup.
type fakeSearcher struct {
	result string
	err    error
	calls  int
}

func (f *fakeSearcher) SearchUserByEmail(ctx context.Context, email string) (string, error) {
	f.calls++
	return f.result, f.err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		searcher *fakeSearcher
		expected string
		wantErr  bool
	}{
		{
			name:     "plain username passes through",
			query:    "torvalds",
			searcher: &fakeSearcher{},
			expected: "torvalds",
		},
		{
			name:     "surrounding whitespace is trimmed",
			query:    "  torvalds  ",
			searcher: &fakeSearcher{},
			expected: "torvalds",
		},
		{
			name:     "full profile URL",
			query:    "https://github.com/torvalds",
			searcher: &fakeSearcher{},
			expected: "torvalds",
		},
		{
			name:     "profile URL without scheme",
			query:    "github.com/torvalds",
			searcher: &fakeSearcher{},
			expected: "torvalds",
		},
		{
			name:     "profile URL with www and trailing path",
			query:    "https://www.github.com/torvalds/linux",
			searcher: &fakeSearcher{},
			expected: "torvalds",
		},
		{
			name:     "email resolves through search",
			query:    "dev@example.com",
			searcher: &fakeSearcher{result: "devuser"},
			expected: "devuser",
		},
		{
			name:     "email with no match is not found",
			query:    "ghost@example.com",
			searcher: &fakeSearcher{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.searcher)
			username, err := r.Resolve(context.Background(), tt.query)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsNotFound(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, username)
		})
	}
}

func TestResolveSkipsSearchForNonEmail(t *testing.T) {
	searcher := &fakeSearcher{result: "someone"}
	r := NewResolver(searcher)

	_, err := r.Resolve(context.Background(), "torvalds")
	require.NoError(t, err)
	assert.Equal(t, 0, searcher.calls)
}

func TestResolveSearchesAnythingWithAtSign(t *testing.T) {
	// Not a well-formed email, but the "@" routes it through search anyway.
	searcher := &fakeSearcher{result: "handle"}
	r := NewResolver(searcher)

	username, err := r.Resolve(context.Background(), "@handle")
	require.NoError(t, err)
	assert.Equal(t, "handle", username)
	assert.Equal(t, 1, searcher.calls)
}
