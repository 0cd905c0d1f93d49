package bootstrap

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/mvps-print/printshop-backend/internal/api/http"
	"github.com/mvps-print/printshop-backend/internal/api/http/middleware"
	carthttp "github.com/mvps-print/printshop-backend/internal/cart/http"
	cartrepo "github.com/mvps-print/printshop-backend/internal/cart/repository"
	"github.com/mvps-print/printshop-backend/internal/guard"
	ordershttp "github.com/mvps-print/printshop-backend/internal/orders/http"
	ordersrepo "github.com/mvps-print/printshop-backend/internal/orders/repository"
	orderssvc "github.com/mvps-print/printshop-backend/internal/orders/service"
	"github.com/mvps-print/printshop-backend/internal/otp"
	stationeryhttp "github.com/mvps-print/printshop-backend/internal/stationery/http"
	stationeryrepo "github.com/mvps-print/printshop-backend/internal/stationery/repository"
	stationerysvc "github.com/mvps-print/printshop-backend/internal/stationery/service"
	usershttp "github.com/mvps-print/printshop-backend/internal/users/http"
	usersrepo "github.com/mvps-print/printshop-backend/internal/users/repository"
	userssvc "github.com/mvps-print/printshop-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	DB    *sql.DB
	Redis *redis.Client

	FileStore   orderssvc.FileStore
	ImageStore  stationerysvc.ImageStore
	Mail        orderssvc.MailSender
	Identity    userssvc.IdentityDeleter
	OTPProvider otp.Provider

	SuperAdminEmail string
	OrderInbox      string
	ImageHost       string

	// EnforceAdmin rejects admin mutations lacking a caller identity.
	// Off by default for drop-in compatibility with clients that predate
	// the X-User-Email header.
	EnforceAdmin bool

	DistDir    string
	UploadsDir string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())
	r.Use(middleware.ContentSecurityPolicy(dep.ImageHost))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	userRepo := usersrepo.NewUserRepository(dep.DB)
	profileRepo := usersrepo.NewProfileRepository(dep.DB)
	userService := userssvc.NewUserService(userRepo, profileRepo, dep.Identity, dep.SuperAdminEmail)

	orderRepo := ordersrepo.NewOrderRepository(dep.DB)
	orderService := orderssvc.NewOrderService(orderRepo, dep.FileStore, dep.Mail, dep.OrderInbox)

	productRepo := stationeryrepo.NewProductRepository(dep.DB)
	productService := stationerysvc.NewProductService(productRepo, dep.ImageStore)

	cartRepo := cartrepo.NewCartRepository(dep.DB)

	routeGuard := guard.New(userService)

	api := r.Group("/api")

	usershttp.New(userService).Register(api)
	ordershttp.New(orderService).Register(api)
	carthttp.New(cartRepo).Register(api)
	guard.NewHandler(routeGuard).Register(api)

	stationeryHandler := stationeryhttp.New(productService)
	stationeryHandler.Register(api)

	admin := api.Group("/admin")
	admin.Use(guard.RequireAdmin(routeGuard, dep.EnforceAdmin))
	stationeryHandler.RegisterAdmin(admin)

	if dep.OTPProvider != nil {
		var store *otp.SessionStore
		if dep.Redis != nil {
			store = otp.NewSessionStore(dep.Redis)
		}
		otpService := otp.NewService(dep.OTPProvider, store, userService)
		otp.NewHandler(otpService).Register(api)
	}

	registerStatic(r, dep.DistDir, dep.UploadsDir)

	return r
}

// registerStatic serves the uploaded-file tree and the compiled front end;
// any unmatched non-API path falls back to the SPA entry document.
func registerStatic(r *gin.Engine, distDir, uploadsDir string) {
	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}
	if distDir == "" {
		return
	}

	index := filepath.Join(distDir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		requested := filepath.Join(distDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(index)
	})
}
