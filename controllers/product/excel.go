package productcontroller

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/pricing"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Sheet columns shared by export and import.
var sheetHeaders = []string{
	"ID", "Title", "Price", "Weight", "Stock", "Discount",
	"BrandID", "Keywords", "Image", "CategoryIDs", "CreatedAt", "UpdatedAt",
}

const (
	colID = iota
	colTitle
	colPrice
	colWeight
	colStock
	colDiscount
	colBrandID
	colKeywords
	colImage
	colCategoryIDs
)

// WriteProductsSheet renders products into an xlsx workbook.
func WriteProductsSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	// Header row
	headerRow := sheet.AddRow()
	for _, h := range sheetHeaders {
		headerRow.AddCell().SetString(h)
	}

	// Data rows
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(p.ID))
		row.AddCell().SetString(p.Title)
		row.AddCell().SetInt64(p.Price)
		if p.Weight != nil {
			row.AddCell().SetFloat(*p.Weight)
		} else {
			row.AddCell()
		}
		optionalInt(row, p.Stock)
		optionalInt(row, p.Discount)
		if p.BrandID != nil {
			row.AddCell().SetInt64(int64(*p.BrandID))
		} else {
			row.AddCell()
		}
		row.AddCell().SetString(p.Keywords)
		row.AddCell().SetString(p.Image)

		var catIDs []string
		for _, cat := range p.Categories {
			catIDs = append(catIDs, strconv.FormatUint(uint64(cat.ID), 10))
		}
		row.AddCell().SetString(strings.Join(catIDs, ","))

		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

func optionalInt(row *xlsx.Row, v *int) {
	cell := row.AddCell()
	if v != nil {
		cell.SetInt(*v)
	}
}

// GET /api/admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.WithContext(c.Request.Context()).Preload("Categories").Order("id").Find(&products).Error; err != nil {
			response.Error(c, err)
			return
		}

		file, err := WriteProductsSheet(products)
		if err != nil {
			response.Error(c, err)
			return
		}
		var buf bytes.Buffer
		if err := file.Write(&buf); err != nil {
			response.Error(c, err)
			return
		}

		// Set response headers for download
		name := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
		c.Header("Content-Disposition", "attachment; filename="+name)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

// ImportResult counts what an import did with each data row.
type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProducts upserts one product per sheet row. Rows with an existing ID
// update that product; the rest are created. Rows without a title, with a bad
// price, with unknown categories or breaking a constraint are skipped. Any
// other storage error stops the import; rows before it stay imported.
func ImportProducts(db *gorm.DB, file *xlsx.File) (ImportResult, error) {
	var res ImportResult
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return res, models.Invalid("file", "has no header row")
	}

	sheet := file.Sheets[0]
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		title := get(colTitle)
		price, err := strconv.ParseInt(get(colPrice), 10, 64)
		if title == "" || err != nil || price < 0 || price > pricing.MaxUnitPrice {
			res.Skipped++
			continue
		}

		var categoryIDs []uint
		for _, part := range strings.Split(get(colCategoryIDs), ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
				categoryIDs = append(categoryIDs, uint(id))
			}
		}
		missing, err := controllers.MissingIDs(db, &models.Category{}, categoryIDs)
		if err != nil {
			return res, err
		}
		if len(missing) > 0 {
			res.Skipped++
			continue
		}

		updated, err := importRow(db, get, title, price, categoryIDs)
		switch {
		case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
			log.Printf("⚠️ import row %d skipped: %v", i+1, err)
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("import row %d: %w", i+1, err)
		case updated:
			res.Updated++
		default:
			res.Created++
		}
	}
	return res, nil
}

func importRow(db *gorm.DB, get func(int) string, title string, price int64, categoryIDs []uint) (bool, error) {
	var updated bool
	err := db.Transaction(func(tx *gorm.DB) error {
		product := models.Product{IsActive: true}
		if id, err := strconv.ParseUint(get(colID), 10, 64); err == nil {
			if err := tx.First(&product, id).Error; err == nil {
				updated = true
			}
		}

		product.Title = title
		product.Price = price
		product.Keywords = get(colKeywords)
		product.Image = get(colImage)
		if w, err := strconv.ParseFloat(get(colWeight), 64); err == nil {
			product.Weight = &w
		}
		if s, err := strconv.Atoi(get(colStock)); err == nil {
			product.Stock = &s
		}
		if d, err := strconv.Atoi(get(colDiscount)); err == nil {
			product.Discount = &d
		}
		if b, err := strconv.ParseUint(get(colBrandID), 10, 64); err == nil {
			brandID := uint(b)
			product.BrandID = &brandID
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		var categories []models.Category
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
				return err
			}
		}
		return tx.Model(&product).Association("Categories").Replace(categories)
	})
	return updated, err
}

// POST /api/admin/products/import
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			response.Error(c, models.Invalid("file", "is required"))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			response.Error(c, models.Invalid("file", "must be an xlsx workbook"))
			return
		}

		res, err := ImportProducts(db.WithContext(c.Request.Context()), xlFile)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, res, "Import completed")
	}
}
