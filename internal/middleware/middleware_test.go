package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tokenvest/internal/config"
	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: time.Hour})
}

func testUser(role models.Role) *models.User {
	return &models.User{
		Base:     models.Base{ID: "0190a1b2-0000-7000-8000-000000000001"},
		Username: "alice",
		Role:     role,
	}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", result)
	}
	return errObj
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetString(ContextUserID),
			"username": c.GetString(ContextUsername),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(testUser(models.RoleAdmin))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.UserID != "0190a1b2-0000-7000-8000-000000000001" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", claims.Role)
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) != time.Hour {
		t.Errorf("expected 1h expiry, got %s", claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestParseAccessToken(t *testing.T) {
	t.Run("rejects wrong secret", func(t *testing.T) {
		claims := &JWTClaims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		if _, err := ParseAccessToken(signed); err == nil {
			t.Fatal("expected error for foreign signature")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		claims := &JWTClaims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if _, err := ParseAccessToken(signed); err == nil {
			t.Fatal("expected error for expired token")
		}
	})

	t.Run("rejects token without subject", func(t *testing.T) {
		claims := &JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if _, err := ParseAccessToken(signed); err == nil {
			t.Fatal("expected error for empty user id")
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	t.Run("missing header", func(t *testing.T) {
		rec := get(r, "/protected", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if code := errorBody(t, rec)["code"]; code != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %v", code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := get(r, "/protected", "Token abc")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := get(r, "/protected", "Bearer not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token sets context", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser(models.RoleInvestor))
		rec := get(r, "/protected", "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body["username"] != "alice" {
			t.Errorf("expected alice, got %q", body["username"])
		}
	})
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole(models.RoleAdmin))

	t.Run("investor is forbidden", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser(models.RoleInvestor))
		rec := get(r, "/protected", "Bearer "+token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if code := errorBody(t, rec)["code"]; code != "FORBIDDEN" {
			t.Errorf("expected FORBIDDEN, got %v", code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser(models.RoleAdmin))
		rec := get(r, "/protected", "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("without auth context", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/x", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
		rec := get(bare, "/x", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.WithMessage(apperrors.ErrInsufficientSupply, "requested 5, available 2"))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("connection reset"))
	})

	t.Run("app error keeps code and kind", func(t *testing.T) {
		rec := get(r, "/app", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		body := errorBody(t, rec)
		if body["code"] != "INSUFFICIENT_SUPPLY" || body["kind"] != "InsufficientSupply" {
			t.Errorf("unexpected body %v", body)
		}
		if body["message"] != "requested 5, available 2" {
			t.Errorf("unexpected message %v", body["message"])
		}
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		rec := get(r, "/raw", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		body := errorBody(t, rec)
		if body["code"] != "INTERNAL_ERROR" {
			t.Errorf("expected INTERNAL_ERROR, got %v", body["code"])
		}
		if _, ok := body["kind"]; ok {
			t.Error("internal errors carry no kind")
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates request id", func(t *testing.T) {
		rec := get(r, "/ping", "")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})

	t.Run("echoes client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("expected abc-123, got %q", got)
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://app.example.com"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("unexpected origin %q", got)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/deadline", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	rec := get(r, "/deadline", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request context to carry a deadline, got %d", rec.Code)
	}
}
