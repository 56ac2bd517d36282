package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SiteController serves the storefront helpers: search, breadcrumbs, the
// sitemap and the contact form.
type SiteController struct {
	searchService     service.SearchService
	breadcrumbService service.BreadcrumbService
	sitemapService    service.SitemapService
	contactService    service.ContactService
}

func NewSiteController(
	searchService service.SearchService,
	breadcrumbService service.BreadcrumbService,
	sitemapService service.SitemapService,
	contactService service.ContactService,
) *SiteController {
	return &SiteController{
		searchService:     searchService,
		breadcrumbService: breadcrumbService,
		sitemapService:    sitemapService,
		contactService:    contactService,
	}
}

// GET /api/search?q=
func (ctrl *SiteController) Search(c *gin.Context) {
	results, err := ctrl.searchService.Search(c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GET /api/breadcrumbs?path=
func (ctrl *SiteController) Breadcrumbs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"crumbs": ctrl.breadcrumbService.Trail(c.Query("path")),
	})
}

// GET /sitemap.xml
func (ctrl *SiteController) Sitemap(c *gin.Context) {
	body, err := ctrl.sitemapService.Build()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to build sitemap", err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// ContactForm forwards a callback request to the sales chat
// POST /api/contact-form
func (ctrl *SiteController) ContactForm(c *gin.Context) {
	var req service.ContactForm
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.contactService.Submit(c.Request.Context(), req); err != nil {
		respondServiceError(c, err, "contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
