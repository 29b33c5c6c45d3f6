package cache

import (
	"errors"
	"testing"
	"time"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"feed", "hot", "0", "20", "0"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestHashKeyDistinguishesParts(t *testing.T) {
	// "ab", "c" must not collide with "a", "bc"
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Error("HashKey() must separate parts before hashing")
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "agora:test",
		},
		{
			name:     "key with colon",
			key:      "test:key",
			expected: "agora:test:key",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "agora:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache

	if _, err := c.Get("key"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Get on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Set("key", "value", time.Second); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Set on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.SetJSON("key", map[string]int{"a": 1}, time.Second); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("SetJSON on nil cache = %v, want ErrCacheDisabled", err)
	}
	if _, err := c.Exists("key"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Exists on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache = %v, want nil", err)
	}
}
