package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestIdentityFromHeader(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "moderator",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name     string
		header   string
		wantID   int64
		wantRole string
		wantErr  bool
	}{
		{
			name:     "valid token",
			header:   "Bearer " + valid,
			wantID:   42,
			wantRole: "moderator",
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: true,
		},
		{
			name:    "no bearer prefix",
			header:  valid,
			wantErr: true,
		},
		{
			name:    "garbage token",
			header:  "Bearer not.a.token",
			wantErr: true,
		},
		{
			name: "wrong secret",
			header: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"sub": float64(42),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": float64(42),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name: "missing sub claim",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"role": "user",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, role, err := identityFromHeader(tt.header, testSecret)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("identityFromHeader() expected error, got id=%d role=%q", id, role)
				}
				return
			}
			if err != nil {
				t.Fatalf("identityFromHeader() unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("identityFromHeader() id = %d, want %d", id, tt.wantID)
			}
			if role != tt.wantRole {
				t.Errorf("identityFromHeader() role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestIdentityFromHeaderDefaultsRole(t *testing.T) {
	header := "Bearer " + signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, role, err := identityFromHeader(header, testSecret)
	if err != nil {
		t.Fatalf("identityFromHeader() unexpected error: %v", err)
	}
	if role != "user" {
		t.Errorf("identityFromHeader() role = %q, want %q", role, "user")
	}
}

func TestIdentityFromHeaderRejectsUnsignedToken(t *testing.T) {
	// alg=none must never be accepted even if the payload looks right.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, _, err := identityFromHeader("Bearer "+raw, testSecret); err == nil {
		t.Error("identityFromHeader() accepted an unsigned token")
	}
}

func authTestEngine(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/probe", Auth(testSecret, required), func(c *gin.Context) {
		id, role := actor(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})
	return engine
}

func TestAuthRequired(t *testing.T) {
	engine := authTestEngine(true)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "no token",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bad token",
			header:     "Bearer junk",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthOptionalAllowsAnonymous(t *testing.T) {
	engine := authTestEngine(false)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("generated when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Header().Get(requestIDHeader) == "" {
			t.Error("expected a generated request ID header")
		}
	})

	t.Run("client value preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(requestIDHeader, "client-supplied")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got != "client-supplied" {
			t.Errorf("request ID = %q, want %q", got, "client-supplied")
		}
	})
}
