package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/access"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	issuer  *auth.Issuer
	revoked *auth.MemoryRevocations
	router  *gin.Engine
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	f := fixture{
		db:      db,
		issuer:  auth.NewIssuer("secret", time.Hour, time.Hour),
		revoked: auth.NewMemoryRevocations(),
	}

	registry := access.NewRegistry("/api/admin")
	registry.Register("GET", "products", "List products", "products")
	registry.Register("GET", "products/:id", "Show product", "products")

	f.router = gin.New()
	admin := f.router.Group("/api/admin")
	admin.Use(ValidateToken(f.issuer, f.revoked, db), CheckPermission(access.NewEvaluator(db), registry))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	admin.GET("/products", ok)
	admin.GET("/products/:id", ok)
	admin.GET("/unregistered", ok)
	return f
}

func (f fixture) user(t *testing.T, phone string, roles ...models.Role) (models.User, string) {
	t.Helper()
	u := models.User{Phone: phone, Password: "x", IsActive: true, Roles: roles}
	require.NoError(t, f.db.Omit("Roles.*").Create(&u).Error)
	token, _, err := f.issuer.Issue(u.ID, false)
	require.NoError(t, err)
	return u, token
}

func (f fixture) get(path, token string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.router.ServeHTTP(w, req)
	return w.Code
}

func TestValidateToken(t *testing.T) {
	f := newFixture(t)
	var super models.Role
	require.NoError(t, f.db.First(&super, models.ReservedRoleID).Error)
	u, token := f.user(t, "09120000001", super)

	assert.Equal(t, http.StatusUnauthorized, f.get("/api/admin/products", ""))
	assert.Equal(t, http.StatusUnauthorized, f.get("/api/admin/products", "garbage"))
	assert.Equal(t, http.StatusOK, f.get("/api/admin/products", token))

	claims, err := f.issuer.Parse(token)
	require.NoError(t, err)
	require.NoError(t, f.revoked.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))
	assert.Equal(t, http.StatusUnauthorized, f.get("/api/admin/products", token), "revoked token")

	fresh, _, err := f.issuer.Issue(u.ID, false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, f.get("/api/admin/products", fresh))
	require.NoError(t, f.db.Model(&u).Update("is_active", false).Error)
	assert.Equal(t, http.StatusUnauthorized, f.get("/api/admin/products", fresh), "inactive user")
}

func TestCheckPermission(t *testing.T) {
	f := newFixture(t)
	perm := models.Permission{Title: "List products", Category: "products", Path: "products", Method: "get"}
	require.NoError(t, f.db.Create(&perm).Error)
	viewer := models.Role{Title: "viewer", Permissions: []models.Permission{perm}}
	require.NoError(t, f.db.Omit("Permissions.*").Create(&viewer).Error)
	var super models.Role
	require.NoError(t, f.db.First(&super, models.ReservedRoleID).Error)

	_, superToken := f.user(t, "09120000001", super)
	_, viewerToken := f.user(t, "09120000002", viewer)
	_, nobodyToken := f.user(t, "09120000003")

	assert.Equal(t, http.StatusOK, f.get("/api/admin/products/5", superToken))
	assert.Equal(t, http.StatusOK, f.get("/api/admin/products", viewerToken))
	assert.Equal(t, http.StatusForbidden, f.get("/api/admin/products/5", viewerToken), "exact template match only")
	assert.Equal(t, http.StatusForbidden, f.get("/api/admin/products", nobodyToken))
	assert.Equal(t, http.StatusOK, f.get("/api/admin/unregistered", superToken), "super role passes any route")
	assert.Equal(t, http.StatusForbidden, f.get("/api/admin/unregistered", viewerToken), "no permission row exists for it")
}
