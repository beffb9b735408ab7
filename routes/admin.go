package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/access"
	cartControllers "github.com/qasemB/Ecommerce-Api/controllers/cart"
	catalogControllers "github.com/qasemB/Ecommerce-Api/controllers/catalog"
	discountControllers "github.com/qasemB/Ecommerce-Api/controllers/discount"
	orderControllers "github.com/qasemB/Ecommerce-Api/controllers/order"
	productcontroller "github.com/qasemB/Ecommerce-Api/controllers/product"
	roleControllers "github.com/qasemB/Ecommerce-Api/controllers/role"
	userControllers "github.com/qasemB/Ecommerce-Api/controllers/user"
	"github.com/qasemB/Ecommerce-Api/middleware"
	"gorm.io/gorm"
)

// adminRouter mounts a route on the admin group and records it in the
// registry, so every reachable admin route has a permission.
type adminRouter struct {
	group    *gin.RouterGroup
	registry *access.Registry
	category string
}

func (a adminRouter) section(category string) adminRouter {
	a.category = category
	return a
}

func (a adminRouter) handle(method, path, title string, h gin.HandlerFunc) {
	a.registry.Register(method, path, title, a.category)
	a.group.Handle(method, path, h)
}

func (a adminRouter) get(path, title string, h gin.HandlerFunc)  { a.handle("GET", path, title, h) }
func (a adminRouter) post(path, title string, h gin.HandlerFunc) { a.handle("POST", path, title, h) }
func (a adminRouter) put(path, title string, h gin.HandlerFunc)  { a.handle("PUT", path, title, h) }
func (a adminRouter) del(path, title string, h gin.HandlerFunc)  { a.handle("DELETE", path, title, h) }

// crud is a lookup table with the five standard handlers.
type crud interface {
	List(db *gorm.DB) gin.HandlerFunc
	Create(db *gorm.DB) gin.HandlerFunc
	Show(db *gorm.DB) gin.HandlerFunc
	Update(db *gorm.DB) gin.HandlerFunc
	Delete(db *gorm.DB) gin.HandlerFunc
}

// SetupAdminRoutes registers all “/api/admin/*” endpoints. Requires a token
// whose user holds the matching permission.
func SetupAdminRoutes(r *gin.Engine, deps Deps, registry *access.Registry) {
	db := deps.DB
	adminGroup := r.Group(AdminPrefix)
	adminGroup.Use(
		middleware.ValidateToken(deps.Tokens, deps.Revoked, db),
		middleware.CheckPermission(access.NewEvaluator(db), registry),
	)
	admin := adminRouter{group: adminGroup, registry: registry}

	// ─────────── Users & Roles ───────────
	users := admin.section("users")
	users.get("users", "List users", userControllers.GetAllUsers(db))
	users.post("users", "Create user", userControllers.CreateUserHandler(db))
	users.get("users/:id", "Show user", userControllers.GetUser(db))
	users.post("users/:id/roles", "Attach roles to user", userControllers.AttachRolesHandler(db))
	users.del("users/:id/roles", "Detach roles from user", userControllers.DetachRolesHandler(db))

	roles := admin.section("roles")
	roles.get("roles", "List roles", roleControllers.GetRoles(db))
	roles.post("roles", "Create role", roleControllers.CreateRole(db))
	roles.get("permissions", "List permissions", roleControllers.GetPermissions(db))

	// ─────────── Category Management ───────────
	categories := admin.section("categories")
	categories.get("categories", "List categories", productcontroller.GetCategories(db))
	categories.post("categories", "Create category", productcontroller.CreateCategory(db))
	categories.get("categories/attributes/:id", "Show attribute", productcontroller.GetAttribute(db))
	categories.put("categories/attributes/:id", "Update attribute", productcontroller.UpdateAttribute(db))
	categories.del("categories/attributes/:id", "Delete attribute", productcontroller.DeleteAttribute(db))
	categories.get("categories/:id", "Show category", productcontroller.GetCategory(db))
	categories.put("categories/:id", "Update category", productcontroller.UpdateCategory(db))
	categories.del("categories/:id", "Delete category", productcontroller.DeleteCategory(db))
	categories.get("categories/:id/attributes", "List category attributes", productcontroller.GetCategoryAttributes(db))
	categories.post("categories/:id/attributes", "Create category attribute", productcontroller.CreateCategoryAttribute(db))

	// ─────────── Product Management ───────────
	products := admin.section("products")
	products.get("products", "List products", productcontroller.GetProducts(db))
	products.post("products", "Create product", productcontroller.CreateProduct(db))
	products.get("products/export", "Export products", productcontroller.ExportProductsToExcel(db))
	products.post("products/import", "Import products", productcontroller.ImportProductsFromExcel(db))
	products.get("products/title_is_exist/:title", "Check product title", productcontroller.TitleIsExist(db))
	products.del("products/gallery/:id", "Delete gallery image", productcontroller.DeleteGalleryImage(db))
	products.get("products/:id", "Show product", productcontroller.GetProductByID(db))
	products.put("products/:id", "Update product", productcontroller.UpdateProduct(db))
	products.del("products/:id", "Delete product", productcontroller.DeleteProduct(db))
	products.get("products/:id/attributes", "List product attributes", productcontroller.GetProductAttributes(db))
	products.post("products/:id/attributes", "Sync product attributes", productcontroller.SyncProductAttributes(db))
	products.post("products/:id/gallery", "Add gallery image", productcontroller.AddGalleryImage(db))

	// ─────────── Catalog ───────────
	catalog := admin.section("catalog")
	for _, res := range []struct {
		path, noun string
		handlers   crud
	}{
		{"colors", "color", catalogControllers.Colors},
		{"brands", "brand", catalogControllers.Brands},
		{"guarantees", "guarantee", catalogControllers.Guarantees},
		{"deliveries", "delivery", catalogControllers.Deliveries},
	} {
		catalog.get(res.path, "List "+res.path, res.handlers.List(db))
		catalog.post(res.path, "Create "+res.noun, res.handlers.Create(db))
		catalog.get(res.path+"/:id", "Show "+res.noun, res.handlers.Show(db))
		catalog.put(res.path+"/:id", "Update "+res.noun, res.handlers.Update(db))
		catalog.del(res.path+"/:id", "Delete "+res.noun, res.handlers.Delete(db))
	}

	// ─────────── Discounts ───────────
	discounts := admin.section("discounts")
	discounts.get("discounts", "List discounts", discountControllers.GetDiscounts(db))
	discounts.post("discounts", "Create discount", discountControllers.CreateDiscountHandler(db))
	discounts.get("discounts/:id", "Show discount", discountControllers.GetDiscount(db))
	discounts.del("discounts/:id", "Delete discount", discountControllers.DeleteDiscount(db))

	// ─────────── Carts & Orders ───────────
	carts := admin.section("carts")
	carts.get("carts", "List carts", cartControllers.GetCarts(db))
	carts.post("carts", "Create cart", cartControllers.CreateCartHandler(db))
	carts.get("carts/:id", "Show cart", cartControllers.GetCart(db))
	carts.del("carts/:id", "Delete cart", cartControllers.DeleteCartHandler(db))

	orders := admin.section("orders")
	orders.get("orders", "List orders", orderControllers.GetOrders(db))
	orders.post("orders", "Create order", orderControllers.CreateOrderHandler(db, deps.Publisher))
	orders.get("orders/feed", "Live order feed", deps.Hub.Serve)
	orders.get("orders/:id", "Show order", orderControllers.GetOrder(db))
	orders.del("orders/:id", "Delete order", orderControllers.DeleteOrder(db))
}
