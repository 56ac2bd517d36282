package router

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/doorhan-crimea/doorhan-backend/config"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/controller"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler set the router mounts
type Controllers struct {
	Category        *controller.CategoryController
	Product         *controller.ProductController
	Color           *controller.ColorController
	ColorAttachment *controller.ColorAttachmentController
	SliderPhoto     *controller.SliderPhotoController
	PdfAttachment   *controller.PdfAttachmentController
	Advantage       *controller.AdvantageController
	Blog            *controller.BlogController
	Upload          *controller.UploadController
	Auth            *controller.AuthController
	Site            *controller.SiteController
	Event           *controller.EventController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	ipAllowlist    *middleware.IPAllowlist
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	ipAllowlist *middleware.IPAllowlist,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		ipAllowlist:    ipAllowlist,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	// an empty list trusts no proxy, so ClientIP falls back to the peer address
	if err := router.SetTrustedProxies(r.config.Admin.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxy list, forwarding headers ignored", err, map[string]interface{}{
			"trusted_proxies": r.config.Admin.TrustedProxies,
		})
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Doorhan API is running",
		})
	})
	router.GET("/sitemap.xml", r.controllers.Site.Sitemap)

	// Uploaded files are served from disk only for the local backend; S3 serves its own URLs
	if r.config.Upload.Backend == "local" {
		for _, dir := range []string{r.config.Upload.ImageDir, r.config.Upload.PDFDir} {
			router.Static(path.Join("/", dir), filepath.Join(r.config.Upload.PublicDir, filepath.FromSlash(dir)))
		}
	}

	c := r.controllers
	api := router.Group("/api")

	// Storefront reads
	{
		api.GET("/categories", c.Category.GetCategories)
		api.GET("/products", c.Product.GetProducts)
		api.GET("/colors", c.Color.GetColors)
		api.GET("/color-attachments", c.ColorAttachment.GetAttachments)
		api.GET("/slider-photos", c.SliderPhoto.GetPhotos)
		api.GET("/pdf-attachments", c.PdfAttachment.GetAttachments)
		api.GET("/advantages", c.Advantage.GetAdvantages)
		api.GET("/blogs", c.Blog.GetPosts)
		api.GET("/search", c.Site.Search)
		api.GET("/breadcrumbs", c.Site.Breadcrumbs)
		api.POST("/contact-form", c.Site.ContactForm)
	}

	// Session
	{
		api.POST("/session", r.ipAllowlist.Middleware(), c.Auth.Login)
		api.DELETE("/session", r.authMiddleware.OptionalSession(), c.Auth.Logout)
	}

	// Admin back office: allow-listed address AND an admin session
	admin := api.Group("",
		r.ipAllowlist.Middleware(),
		r.authMiddleware.RequireSession(),
		r.authMiddleware.RequireRole(string(model.RoleAdmin)),
	)
	{
		admin.GET("/admin/me", c.Auth.Me)
		admin.GET("/admin/events", c.Event.Stream)

		admin.POST("/categories", c.Category.CreateCategory)
		admin.PATCH("/categories", c.Category.UpdateCategory)
		admin.DELETE("/categories", c.Category.DeleteCategory)

		admin.POST("/products", c.Product.CreateProduct)
		admin.PATCH("/products", c.Product.UpdateProduct)
		admin.DELETE("/products", c.Product.DeleteProduct)

		admin.POST("/colors", c.Color.CreateColor)
		admin.PATCH("/colors", c.Color.UpdateColor)
		admin.DELETE("/colors", c.Color.DeleteColor)

		admin.POST("/color-attachments", c.ColorAttachment.AttachColor)
		admin.PUT("/color-attachments", c.ColorAttachment.UpdateAttachment)
		admin.DELETE("/color-attachments", c.ColorAttachment.DetachColor)

		admin.POST("/slider-photos", c.SliderPhoto.CreatePhotos)
		admin.PATCH("/slider-photos", c.SliderPhoto.UpdateOrder)
		admin.PUT("/slider-photos/reorder", c.SliderPhoto.Reorder)
		admin.DELETE("/slider-photos", c.SliderPhoto.DeletePhoto)

		admin.POST("/pdf-attachments", c.PdfAttachment.UploadAttachment)
		admin.DELETE("/pdf-attachments", c.PdfAttachment.DeleteAttachment)

		admin.POST("/advantages", c.Advantage.CreateAdvantages)
		admin.PATCH("/advantages", c.Advantage.UpdateAdvantage)
		admin.DELETE("/advantages", c.Advantage.DeleteAdvantage)

		admin.POST("/blogs", c.Blog.CreatePost)
		admin.PATCH("/blogs", c.Blog.UpdatePost)
		admin.DELETE("/blogs", c.Blog.DeletePost)

		admin.POST("/upload", c.Upload.UploadImage)
		admin.DELETE("/upload", c.Upload.DeleteImage)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
