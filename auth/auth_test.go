package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/testutil"
	"github.com/qasemB/Ecommerce-Api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)
	token, exp, err := issuer.Issue(42, false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.NotEmpty(t, claims.ID)

	_, remembered, err := issuer.Issue(42, true)
	require.NoError(t, err)
	assert.True(t, remembered.After(exp))
}

func TestParseRejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, time.Hour)
	other := NewIssuer("other", time.Hour, time.Hour)
	token, _, err := other.Issue(1, false)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.Error(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := issuer.Issue(1, false)
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(old)
	assert.Error(t, err)
}

func TestMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocations()
	require.NoError(t, store.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "gone", time.Now().Add(-time.Second)))

	revoked, err := store.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = store.IsRevoked(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, revoked, "expired entries no longer count")
	revoked, err = store.IsRevoked(ctx, "b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Setup()
	db := testutil.NewDB(t)
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	r := gin.New()
	r.POST("/register", Register(db, issuer))
	r.POST("/login", Login(db, issuer))

	w := post(r, "/register", `{"phone":"09121112233","password":"secret1","c_password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	_, err := issuer.Parse(registered.Token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("phone = ?", "09121112233").First(&user).Error)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.Password)

	w = post(r, "/register", `{"phone":"09121112233","password":"secret1","c_password":"secret1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = post(r, "/register", `{"phone":"09121112244","password":"secret1","c_password":"other"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "c_password")

	w = post(r, "/login", `{"phone":"09121112233","password":"secret1","remember":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Bearer", login.TokenType)
	exp, err := time.ParseInLocation("2006-01-02 15:04:05", login.ExpiresAt, time.Local)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now().Add(time.Hour)), "remember uses the long ttl")

	w = post(r, "/login", `{"phone":"09121112233","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = post(r, "/login", `{"phone":"09129999999","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, db.Model(&user).Update("is_active", false).Error)
	w = post(r, "/login", `{"phone":"09121112233","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "inactive users cannot log in")
}

func TestLogoutRevokesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewIssuer("secret", time.Hour, time.Hour)
	store := NewMemoryRevocations()
	token, _, err := issuer.Issue(7, false)
	require.NoError(t, err)
	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/logout", func(c *gin.Context) {
		SetCurrent(c, models.User{ID: 7}, claims)
	}, Logout(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	require.Equal(t, http.StatusOK, w.Code)

	revoked, err := store.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
