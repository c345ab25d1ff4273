package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestSessionMiddleware_SlidingSession(t *testing.T) {
	handler, _ := newHandler(t)

	sign := func(exp time.Duration) string {
		claims := jwt.MapClaims{
			"user_id": "user_1",
			"exp":     time.Now().Add(exp).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))
		return tokenString
	}

	serve := func(req *http.Request) (*httptest.ResponseRecorder, string) {
		rr := httptest.NewRecorder()
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(UserIDKey).(string)
			w.WriteHeader(http.StatusOK)
		})
		handler.SessionMiddleware(next).ServeHTTP(rr, req)
		return rr, seen
	}

	t.Run("TokenRenewed", func(t *testing.T) {
		// Expires in 11 hours, less than TokenDuration/2
		tokenString := sign(11 * time.Hour)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenString})

		rr, seen := serve(req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user_1", seen)

		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == CookieName {
				found = true
				assert.NotEqual(t, tokenString, c.Value)
			}
		}
		assert.True(t, found, "expected new auth_token cookie to be set")
	})

	t.Run("TokenNotRenewed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: sign(13 * time.Hour)})

		rr, seen := serve(req)
		assert.Equal(t, "user_1", seen)
		for _, c := range rr.Result().Cookies() {
			assert.NotEqual(t, CookieName, c.Name, "did not expect a new auth_token cookie")
		}
	})

	t.Run("InvalidTokenPassesThrough", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})

		rr, seen := serve(req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, seen)
	})
}
