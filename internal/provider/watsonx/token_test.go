package watsonx //nolint:testpackage // Needs access to the clock and cached credential

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mindvex/watsonx-relay/internal/domain"
)

func TestTokenCache_Token(t *testing.T) {
	t.Run("should fetch and cache a fresh token", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)

			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			require.Equal(t, "urn:ibm:params:oauth:grant-type:apikey", r.PostFormValue("grant_type"))
			require.Equal(t, "key-123", r.PostFormValue("apikey"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"T","expires_in":3600}`))
		}))
		defer server.Close()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		cache := NewTokenCache(Config{APIKey: "key-123", IAMURL: server.URL, Timeout: 5})
		cache.now = func() time.Time { return now }

		token, err := cache.Token(context.Background())

		require.NoError(t, err)
		require.Equal(t, "T", token)
		require.Equal(t, int32(1), calls.Load())

		// Expiry is reported lifetime minus the 5-minute margin.
		require.Equal(t, now.Add(3300*time.Second), cache.cached.expiresAt)
	})

	t.Run("should reuse cached token without network call", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"access_token":"T","expires_in":3600}`))
		}))
		defer server.Close()

		cache := NewTokenCache(Config{APIKey: "key-123", IAMURL: server.URL, Timeout: 5})

		first, err := cache.Token(context.Background())
		require.NoError(t, err)

		second, err := cache.Token(context.Background())
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("should refresh when the cached token is past its margin", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"access_token":"T2","expires_in":3600}`))
		}))
		defer server.Close()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		cache := NewTokenCache(Config{APIKey: "key-123", IAMURL: server.URL, Timeout: 5})
		cache.now = func() time.Time { return now }
		cache.cached = &credential{token: "T1", expiresAt: now} // now >= expiresAt

		token, err := cache.Token(context.Background())

		require.NoError(t, err)
		require.Equal(t, "T2", token)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("should default expires_in to 3600 seconds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"T"}`))
		}))
		defer server.Close()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		cache := NewTokenCache(Config{APIKey: "key-123", IAMURL: server.URL, Timeout: 5})
		cache.now = func() time.Time { return now }

		_, err := cache.Token(context.Background())

		require.NoError(t, err)
		require.Equal(t, now.Add(3300*time.Second), cache.cached.expiresAt)
	})

	t.Run("should fail without network call when API key missing", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		cache := NewTokenCache(Config{IAMURL: server.URL, Timeout: 5})

		_, err := cache.Token(context.Background())

		require.ErrorIs(t, err, domain.ErrAPIKeyMissing)
		require.Equal(t, int32(0), calls.Load())
		require.False(t, cache.Configured())
	})

	t.Run("should surface remote status and body on rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errorMessage":"Provided API key could not be found"}`))
		}))
		defer server.Close()

		cache := NewTokenCache(Config{APIKey: "bad-key", IAMURL: server.URL, Timeout: 5})

		_, err := cache.Token(context.Background())

		require.Error(t, err)

		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, http.StatusUnauthorized, authErr.Status)
		require.Contains(t, authErr.Body, "could not be found")
		require.Nil(t, cache.cached, "failed refresh must not cache a credential")
	})

	t.Run("should fail on response without access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"expires_in":3600}`))
		}))
		defer server.Close()

		cache := NewTokenCache(Config{APIKey: "key-123", IAMURL: server.URL, Timeout: 5})

		_, err := cache.Token(context.Background())

		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
		require.Nil(t, cache.cached)
	})

	t.Run("should fail with auth error when endpoint unreachable", func(t *testing.T) {
		cache := NewTokenCache(Config{
			APIKey:  "key-123",
			IAMURL:  "http://127.0.0.1:1", // nothing listens here
			Timeout: 1,
		})

		_, err := cache.Token(context.Background())

		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
	})
}
