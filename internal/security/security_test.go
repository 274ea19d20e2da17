package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAPIKey_IsValid(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name     string
		key      *APIKey
		expected bool
	}{
		{"enabled key", &APIKey{Enabled: true}, true},
		{"disabled key", &APIKey{Enabled: false}, false},
		{"not yet expired", &APIKey{Enabled: true, ExpiresAt: &future}, true},
		{"expired", &APIKey{Enabled: true, ExpiresAt: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.key.IsValid(); result != tt.expected {
				t.Errorf("IsValid() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestAPIKey_HasScope(t *testing.T) {
	key := &APIKey{Scopes: []string{"generate", "export"}}

	if !key.HasScope("generate") {
		t.Error("expected generate scope")
	}
	if key.HasScope("admin") {
		t.Error("did not expect admin scope")
	}

	wildcard := &APIKey{Scopes: []string{"*"}}
	if !wildcard.HasScope("anything") {
		t.Error("wildcard should match any scope")
	}
}

func TestAPIKeyManager_GenerateAndValidate(t *testing.T) {
	manager := NewAPIKeyManager()

	key, err := manager.GenerateKey("ops-console", []string{"generate"}, nil)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if key.Key == "" {
		t.Error("key should not be empty")
	}

	valid, err := manager.Validate(key.Key)
	if err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	if valid.Key != key.Key {
		t.Error("got wrong key back")
	}

	if _, err := manager.Validate("bogus"); err != ErrInvalidAPIKey {
		t.Errorf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestAPIKeyManager_Revoke(t *testing.T) {
	manager := NewAPIKeyManager()
	key, _ := manager.GenerateKey("ops-console", []string{"generate"}, nil)
	manager.Revoke(key.Key)

	if _, err := manager.Validate(key.Key); err != ErrExpiredAPIKey {
		t.Errorf("expected ErrExpiredAPIKey after revoke, got %v", err)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(5, time.Second)

	for i := 0; i < 5; i++ {
		if !limiter.Allow("client1") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("client1") {
		t.Error("6th request should be denied")
	}
	if !limiter.Allow("client2") {
		t.Error("a different client should still be allowed")
	}
}

func TestExtractAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		expected string
	}{
		{
			name:     "bearer token",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer test_key") },
			expected: "test_key",
		},
		{
			name:     "x-api-key header",
			setup:    func(r *http.Request) { r.Header.Set("X-API-Key", "api_key_123") },
			expected: "api_key_123",
		},
		{
			name: "query parameter",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("api_key", "query_key")
				r.URL.RawQuery = q.Encode()
			},
			expected: "query_key",
		},
		{name: "no key present", setup: func(r *http.Request) {}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			tt.setup(req)

			if result := ExtractAPIKey(req); result != tt.expected {
				t.Errorf("ExtractAPIKey() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
