package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
	"github.com/InQaaaaGit/subd_redirect.git/internal/storage"
)

// mockSource реализует storage.ShorthandSource для тестов и считает вызовы Load
type mockSource struct {
	mu       sync.Mutex
	calls    int
	loadFunc func(ctx context.Context) ([]models.Shorthand, error)
}

func (m *mockSource) Load(ctx context.Context) ([]models.Shorthand, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var testEntries = []models.Shorthand{
	{Short: "gh", Long: "https://github.com"},
	{Short: "go", Long: "https://go.dev"},
	{Short: "gh", Long: "https://gitlab.com"},
}

func TestRedirectService_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected Outcome
	}{
		{
			name:     "Known shorthand redirects",
			host:     "gh.example.com",
			expected: Outcome{Kind: OutcomeRedirect, Location: "https://github.com"},
		},
		{
			name:     "First match wins",
			host:     "gh.example.org:443",
			expected: Outcome{Kind: OutcomeRedirect, Location: "https://github.com"},
		},
		{
			name:     "Second entry",
			host:     "go.example.com",
			expected: Outcome{Kind: OutcomeRedirect, Location: "https://go.dev"},
		},
		{
			name:     "Lookup is case sensitive",
			host:     "GH.example.com",
			expected: Outcome{Kind: OutcomeNotFound},
		},
		{
			name:     "Unknown shorthand",
			host:     "foo.example.com",
			expected: Outcome{Kind: OutcomeNotFound},
		},
		{
			name:     "Listing",
			host:     "list.example.com",
			expected: Outcome{Kind: OutcomeListing, Entries: testEntries},
		},
		{
			name:     "No subdomain",
			host:     "example.com",
			expected: Outcome{Kind: OutcomeBadRequest, Err: ErrNoSubdomain},
		},
		{
			name:     "Missing host",
			host:     "",
			expected: Outcome{Kind: OutcomeBadRequest, Err: ErrMissingHost},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRedirectService(storage.NewMemorySource(testEntries), zap.NewNop())

			outcome := svc.Resolve(context.Background(), tt.host)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestRedirectService_BadRequestSkipsSource(t *testing.T) {
	source := &mockSource{
		loadFunc: func(ctx context.Context) ([]models.Shorthand, error) {
			return nil, fmt.Errorf("%w: broken", storage.ErrParse)
		},
	}
	svc := NewRedirectService(source, zap.NewNop())

	outcome := svc.Resolve(context.Background(), "example.com")
	assert.Equal(t, OutcomeBadRequest, outcome.Kind)
	assert.Equal(t, 0, source.Calls())
}

func TestRedirectService_LoadErrors(t *testing.T) {
	loadErrors := []error{storage.ErrRead, storage.ErrParse, storage.ErrReservedName}

	for _, loadErr := range loadErrors {
		t.Run(loadErr.Error(), func(t *testing.T) {
			source := &mockSource{
				loadFunc: func(ctx context.Context) ([]models.Shorthand, error) {
					return nil, fmt.Errorf("%w: details", loadErr)
				},
			}
			svc := NewRedirectService(source, zap.NewNop())

			for _, host := range []string{"gh.example.com", "list.example.com", "foo.example.com"} {
				outcome := svc.Resolve(context.Background(), host)
				assert.Equal(t, OutcomeInternalError, outcome.Kind)
				assert.ErrorIs(t, outcome.Err, loadErr)
			}
			assert.Equal(t, 3, source.Calls())
		})
	}
}

func TestRedirectService_ReservedNameInSource(t *testing.T) {
	source := storage.NewMemorySource([]models.Shorthand{{Short: "list", Long: "https://x.com"}})
	svc := NewRedirectService(source, zap.NewNop())

	for _, host := range []string{"list.example.com", "gh.example.com"} {
		outcome := svc.Resolve(context.Background(), host)
		assert.Equal(t, OutcomeInternalError, outcome.Kind)
		assert.ErrorIs(t, outcome.Err, storage.ErrReservedName)
	}
}

func TestRedirectService_LoadsOnEveryRequest(t *testing.T) {
	source := &mockSource{
		loadFunc: func(ctx context.Context) ([]models.Shorthand, error) {
			return []models.Shorthand{{Short: "gh", Long: "https://github.com"}}, nil
		},
	}
	svc := NewRedirectService(source, zap.NewNop())

	first := svc.Resolve(context.Background(), "gh.example.com")
	second := svc.Resolve(context.Background(), "gh.example.com")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, source.Calls())
}

func TestRedirectService_ConcurrentResolve(t *testing.T) {
	svc := NewRedirectService(storage.NewMemorySource(testEntries), zap.NewNop())
	iterations := 100

	var wg sync.WaitGroup
	wg.Add(iterations)
	for i := 0; i < iterations; i++ {
		go func(i int) {
			defer wg.Done()
			host := "gh.example.com"
			if i%2 == 0 {
				host = "list.example.com"
			}
			outcome := svc.Resolve(context.Background(), host)
			assert.NotEqual(t, OutcomeInternalError, outcome.Kind)
		}(i)
	}
	wg.Wait()
}

func TestLookup(t *testing.T) {
	entry, ok := Lookup(testEntries, "gh")
	require.True(t, ok)
	assert.Equal(t, "https://github.com", entry.Long)

	_, ok = Lookup(testEntries, "missing")
	assert.False(t, ok)

	_, ok = Lookup(nil, "gh")
	assert.False(t, ok)
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "redirect", OutcomeRedirect.String())
	assert.Equal(t, "listing", OutcomeListing.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}
