package catalogControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/testutil"
	"github.com/qasemB/Ecommerce-Api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Setup()
	r := gin.New()
	r.GET("/colors", Colors.List(db))
	r.POST("/colors", Colors.Create(db))
	r.GET("/colors/:id", Colors.Show(db))
	r.PUT("/colors/:id", Colors.Update(db))
	r.DELETE("/colors/:id", Colors.Delete(db))
	r.POST("/brands", Brands.Create(db))
	r.DELETE("/brands/:id", Brands.Delete(db))
	r.POST("/deliveries", Deliveries.Create(db))
	r.GET("/guarantees/:id", Guarantees.Show(db))
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return w
}

func errorFields(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Errors
}

func TestColorLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)

	w := send(r, http.MethodPost, "/colors", `{"title":"Blue","code":"#0000ff"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data models.Color `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Blue", created.Data.Title)

	w = send(r, http.MethodPost, "/colors", `{"title":"Blue","code":"#00f"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorFields(t, w), "title")

	w = send(r, http.MethodPost, "/colors", `{"title":"Navy","code":"blue"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorFields(t, w), "code")

	w = send(r, http.MethodPut, "/colors/1", `{"title":"Sky","code":"#87ceeb"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var color models.Color
	require.NoError(t, db.First(&color, created.Data.ID).Error)
	assert.Equal(t, "Sky", color.Title)

	w = send(r, http.MethodGet, "/colors", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodDelete, "/colors/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodGet, "/colors/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrandSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)

	w := send(r, http.MethodPost, "/brands", `{"original_name":"Acme","persian_name":"آکمه"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = send(r, http.MethodDelete, "/brands/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Brand{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&models.Brand{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeliveryRequiresAmount(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)

	w := send(r, http.MethodPost, "/deliveries", `{"title":"Post"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorFields(t, w), "amount")

	w = send(r, http.MethodPost, "/deliveries", `{"title":"Pickup","amount":0}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(r, http.MethodGet, "/guarantees/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
