package watsonx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mindvex/watsonx-relay/internal/domain"
	"github.com/mindvex/watsonx-relay/internal/observability"
)

const (
	iamGrantType = "urn:ibm:params:oauth:grant-type:apikey"

	defaultExpirySeconds = 3600

	// Tokens are treated as expired this long before the reported expiry,
	// so an in-flight generation call never races the real expiry.
	expiryMargin = 5 * time.Minute
)

// credential is a token paired with its computed expiry.
// Always swapped as a whole so readers never see a token without its expiry.
type credential struct {
	token     string
	expiresAt time.Time
}

// TokenCache owns the IAM bearer-token lifecycle for the watsonx provider.
// It implements domain.TokenSource.
type TokenCache struct {
	apiKey     string
	iamURL     string
	httpClient *http.Client

	mu     sync.RWMutex
	cached *credential

	now func() time.Time
}

// NewTokenCache creates a new IAM token cache.
func NewTokenCache(config Config) *TokenCache {
	return &TokenCache{
		apiKey: config.APIKey,
		iamURL: config.IAMURL,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		now: time.Now,
	}
}

// Configured reports whether an API key is set.
func (t *TokenCache) Configured() bool {
	return t.apiKey != ""
}

// Token returns a valid access token, refreshing it against the identity
// endpoint when absent or past the safety margin.
//
// Concurrent callers observing an expired cache may each trigger a refresh;
// refreshes are idempotent and every credential swap is atomic, so this is
// safe, just occasionally redundant.
func (t *TokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := t.cachedToken(); ok {
		observability.FromContext(ctx).Debug("using cached IAM token")
		return token, nil
	}

	if t.apiKey == "" {
		return "", domain.ErrAPIKeyMissing
	}

	observability.FromContext(ctx).Info("fetching new IAM access token from IBM Cloud")

	cred, err := t.fetchCredential(ctx)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	t.cached = cred
	t.mu.Unlock()

	return cred.token, nil
}

// cachedToken returns the cached token if it is still usable.
func (t *TokenCache) cachedToken() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.cached != nil && t.now().Before(t.cached.expiresAt) {
		return t.cached.token, true
	}
	return "", false
}

type iamTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// fetchCredential exchanges the API key for a fresh token.
func (t *TokenCache) fetchCredential(ctx context.Context) (*credential, error) {
	form := url.Values{}
	form.Set("grant_type", iamGrantType)
	form.Set("apikey", t.apiKey)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.iamURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create IAM request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.AuthError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp iamTokenResponse
	if decodeErr := json.Unmarshal(body, &tokenResp); decodeErr != nil {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: string(body), Err: decodeErr}
	}

	if tokenResp.AccessToken == "" {
		return nil, &domain.AuthError{
			Status: resp.StatusCode,
			Body:   "no access token in IAM response",
		}
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpirySeconds
	}

	observability.FromContext(ctx).Info("IAM access token obtained",
		observability.Int("expires_in", expiresIn))

	return &credential{
		token:     tokenResp.AccessToken,
		expiresAt: t.now().Add(time.Duration(expiresIn)*time.Second - expiryMargin),
	}, nil
}
