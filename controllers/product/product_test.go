package productcontroller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/testutil"
	"github.com/qasemB/Ecommerce-Api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Setup()
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.POST("/products", CreateProduct(db))
	r.GET("/products/export", ExportProductsToExcel(db))
	r.POST("/products/import", ImportProductsFromExcel(db))
	r.GET("/products/title_is_exist/:title", TitleIsExist(db))
	r.DELETE("/products/gallery/:id", DeleteGalleryImage(db))
	r.GET("/products/:id", GetProductByID(db))
	r.PUT("/products/:id", UpdateProduct(db))
	r.DELETE("/products/:id", DeleteProduct(db))
	r.GET("/products/:id/attributes", GetProductAttributes(db))
	r.POST("/products/:id/attributes", SyncProductAttributes(db))
	r.POST("/products/:id/gallery", AddGalleryImage(db))

	r.GET("/categories", GetCategories(db))
	r.POST("/categories", CreateCategory(db))
	r.GET("/categories/attributes/:id", GetAttribute(db))
	r.PUT("/categories/attributes/:id", UpdateAttribute(db))
	r.DELETE("/categories/attributes/:id", DeleteAttribute(db))
	r.GET("/categories/:id", GetCategory(db))
	r.PUT("/categories/:id", UpdateCategory(db))
	r.DELETE("/categories/:id", DeleteCategory(db))
	r.GET("/categories/:id/attributes", GetCategoryAttributes(db))
	r.POST("/categories/:id/attributes", CreateCategoryAttribute(db))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, &buf))
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestCreateAndUpdateProduct(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)

	phones := models.Category{Title: "Phones", IsActive: true}
	tablets := models.Category{Title: "Tablets", IsActive: true}
	red := models.Color{Title: "Red", Code: "#f00"}
	testutil.MustCreate(t, db, &phones, &tablets, &red)

	w := doJSON(t, r, http.MethodPost, "/products", ProductInput{
		Title:       "Galaxy S",
		Price:       1500,
		Image:       "images/products/galaxy.png",
		CategoryIDs: []uint{phones.ID},
		ColorIDs:    []uint{red.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	decodeData(t, w, &created)
	assert.True(t, created.IsActive)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "Phones", created.Categories[0].Title)
	require.Len(t, created.Colors, 1)

	var gallery []models.Gallery
	require.NoError(t, db.Where("product_id = ?", created.ID).Find(&gallery).Error)
	require.Len(t, gallery, 1)
	assert.True(t, gallery[0].IsMain)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), ProductInput{
		Title:       "Galaxy Tab",
		Price:       2000,
		CategoryIDs: []uint{tablets.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Product
	decodeData(t, w, &updated)
	assert.Equal(t, int64(2000), updated.Price)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Tablets", updated.Categories[0].Title)
	assert.Len(t, updated.Colors, 1, "colors are kept when not given")
	assert.Equal(t, "images/products/galaxy.png", updated.Image)
}

func TestCreateProductValidation(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)

	w := doJSON(t, r, http.MethodPost, "/products", ProductInput{Title: "Pixel", Price: 10, CategoryIDs: []uint{99}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "category_ids.0")

	w = doJSON(t, r, http.MethodPost, "/products", map[string]any{"title": "<script>"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp.Errors = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, field := range []string{"title", "price", "category_ids"} {
		assert.Contains(t, resp.Errors, field)
	}

	w = doJSON(t, r, http.MethodPost, "/products", map[string]any{"title": "Jet", "price": 2_000_000_000_000, "category_ids": []uint{1}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp.Errors = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"must be at most 1000000000000"}, resp.Errors["price"])
}

func TestTitleIsExist(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	testutil.MustCreate(t, db, &models.Product{Title: "Camera", Price: 1})

	for title, want := range map[string]bool{"Camera": true, "Lens": false} {
		w := doJSON(t, r, http.MethodGet, "/products/title_is_exist/"+title, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			IsExist bool `json:"isExist"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.IsExist, title)
	}
}

func TestListProductsPaginated(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	for i := 0; i < 12; i++ {
		testutil.MustCreate(t, db, &models.Product{Title: fmt.Sprintf("Item %02d", i), Price: int64(i)})
	}
	testutil.MustCreate(t, db, &models.Product{Title: "Other", Price: 1})

	w := doJSON(t, r, http.MethodGet, "/products?page=2&searchChar=Item", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data  []models.Product `json:"data"`
		Total int64            `json:"total"`
		Page  int              `json:"page"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Count)
	assert.Len(t, resp.Data, 2)

	w = doJSON(t, r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.NotContains(t, all, "total")
}

func TestDeleteProduct(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	cat := models.Category{Title: "Audio"}
	testutil.MustCreate(t, db, &cat)
	product := models.Product{Title: "Speaker", Price: 10, Categories: []models.Category{cat}}
	testutil.MustCreate(t, db, &product)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Zero(t, db.Model(&cat).Association("Products").Count())
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncProductAttributes(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	cat := models.Category{Title: "Laptops"}
	testutil.MustCreate(t, db, &cat)
	ram := models.Attribute{CategoryID: cat.ID, Title: "RAM", Unit: "GB"}
	cpu := models.Attribute{CategoryID: cat.ID, Title: "CPU", Unit: "GHz"}
	product := models.Product{Title: "ThinkPad", Price: 100}
	testutil.MustCreate(t, db, &ram, &cpu, &product)
	path := fmt.Sprintf("/products/%d/attributes", product.ID)

	w := doJSON(t, r, http.MethodPost, path, []AttributeValue{
		{AttributeID: ram.ID, Value: "16"},
		{AttributeID: cpu.ID, Value: "2.4"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, path, []AttributeValue{{AttributeID: ram.ID, Value: "32"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var attrs []models.ProductAttribute
	decodeData(t, w, &attrs)
	require.Len(t, attrs, 1)
	assert.Equal(t, "32", attrs[0].Value)
	assert.Equal(t, "RAM", attrs[0].Attribute.Title)

	w = doJSON(t, r, http.MethodPost, path, []AttributeValue{{AttributeID: 404, Value: ""}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "0.attribute_id")
	assert.Contains(t, resp.Errors, "0.value")
}

func TestGallery(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	product := models.Product{Title: "Watch", Price: 10}
	testutil.MustCreate(t, db, &product)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/products/%d/gallery", product.ID), GalleryInput{Image: "images/watch-1.png", IsMain: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var image models.Gallery
	decodeData(t, w, &image)

	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, "images/watch-1.png", product.Image)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/gallery/%d", image.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/gallery/%d", image.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/products/999/gallery", GalleryInput{Image: "x.png"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportThenImportProducts(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	cat := models.Category{Title: "Books"}
	testutil.MustCreate(t, db, &cat)
	stock := 4
	product := models.Product{Title: "Go in Action", Price: 300, Stock: &stock, Categories: []models.Category{cat}}
	testutil.MustCreate(t, db, &product)

	w := doJSON(t, r, http.MethodGet, "/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	book, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet := book.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Go in Action", sheet.Rows[1].Cells[colTitle].String())

	// change the price of the exported row and append a new and a broken one
	sheet.Rows[1].Cells[colPrice].SetInt64(450)
	row := sheet.AddRow()
	for _, v := range []string{"", "Effective Go", "120", "", "", "", "", "", "", fmt.Sprint(cat.ID)} {
		row.AddCell().SetString(v)
	}
	broken := sheet.AddRow()
	for _, v := range []string{"", "No price", "abc"} {
		broken.AddCell().SetString(v)
	}

	var upload bytes.Buffer
	require.NoError(t, book.Write(&upload))
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(upload.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res ImportResult
	decodeData(t, w, &res)
	assert.Equal(t, ImportResult{Created: 1, Updated: 1, Skipped: 1}, res)

	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, int64(450), product.Price)
	var created models.Product
	require.NoError(t, db.Preload("Categories").Where("title = ?", "Effective Go").First(&created).Error)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, cat.ID, created.Categories[0].ID)
}

func TestImportProductsStopsOnStorageError(t *testing.T) {
	db := testutil.NewDB(t)
	cat := models.Category{Title: "Tools"}
	testutil.MustCreate(t, db, &cat)

	book, err := WriteProductsSheet(nil)
	require.NoError(t, err)
	row := book.Sheets[0].AddRow()
	for _, v := range []string{"", "Hammer", "75", "", "", "", "", "", "", fmt.Sprint(cat.ID)} {
		row.AddCell().SetString(v)
	}

	res, err := ImportProducts(db, book)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 1}, res)

	require.NoError(t, db.Migrator().DropTable("category_product"))
	_, err = ImportProducts(db, book)
	require.Error(t, err)
	var verr *models.ValidationError
	assert.False(t, errors.As(err, &verr), "storage failures are not reported as skipped rows")
}
