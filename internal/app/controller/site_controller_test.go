package controller

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/pkg/telegram"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubNotifier struct {
	texts []string
	err   error
}

func (n *stubNotifier) SendMessage(_ context.Context, text string) (*telegram.Message, error) {
	if n.err != nil {
		return nil, n.err
	}
	n.texts = append(n.texts, text)
	return &telegram.Message{MessageID: int64(len(n.texts))}, nil
}

func setupSiteControllerTest(t *testing.T, notifier service.ContactNotifier) (*gin.Engine, *gorm.DB) {
	router, testDB := setupControllerTest(t)

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	ctrl := NewSiteController(
		service.NewSearchService(productRepo),
		service.NewBreadcrumbService(categoryRepo, productRepo),
		service.NewSitemapService(categoryRepo, productRepo, "https://doorhan-crimea.ru"),
		service.NewContactService(notifier, nil),
	)
	router.GET("/api/search", ctrl.Search)
	router.GET("/api/breadcrumbs", ctrl.Breadcrumbs)
	router.GET("/sitemap.xml", ctrl.Sitemap)
	router.POST("/api/contact-form", ctrl.ContactForm)

	return router, testDB
}

func TestSiteController_Search(t *testing.T) {
	router, testDB := setupSiteControllerTest(t, &stubNotifier{})
	seedProduct(t, testDB, "Sectional gate", "sectional-gate", nil)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "blank query", query: "", want: 0},
		{name: "match", query: "sectional", want: 1},
		{name: "no match", query: "barrier", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodGet, "/api/search?q="+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Results []model.Product `json:"results"`
			}
			decodeBody(t, w, &body)
			assert.Len(t, body.Results, tt.want)
		})
	}
}

func TestSiteController_Breadcrumbs(t *testing.T) {
	router, testDB := setupSiteControllerTest(t, &stubNotifier{})
	category := seedCategory(t, testDB, "Ворота", "vorota")
	seedProduct(t, testDB, "Sectional", "sectional", &category.ID)

	w := performJSON(t, router, http.MethodGet, "/api/breadcrumbs?path=/posts/vorota/sectional", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Crumbs []service.Crumb `json:"crumbs"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Crumbs, 4)
	assert.Equal(t, service.Crumb{Label: "Главная", Link: "/"}, body.Crumbs[0])
	assert.Equal(t, "Sectional", body.Crumbs[3].Label)
}

func TestSiteController_Sitemap(t *testing.T) {
	router, testDB := setupSiteControllerTest(t, &stubNotifier{})
	seedCategory(t, testDB, "Ворота", "vorota")

	w := performJSON(t, router, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))

	var doc struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	var locs []string
	for _, u := range doc.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Contains(t, locs, "https://doorhan-crimea.ru/posts/vorota")
}

func TestSiteController_ContactForm(t *testing.T) {
	t.Run("delivered", func(t *testing.T) {
		notifier := &stubNotifier{}
		router, _ := setupSiteControllerTest(t, notifier)

		w := performJSON(t, router, http.MethodPost, "/api/contact-form", service.ContactForm{
			Name:  "Иван",
			Phone: "+7 978 000-00-00",
			Page:  "/posts/vorota",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, notifier.texts, 1)
		assert.Contains(t, notifier.texts[0], "+7 978 000-00-00")
	})

	t.Run("phone required", func(t *testing.T) {
		notifier := &stubNotifier{}
		router, _ := setupSiteControllerTest(t, notifier)

		w := performJSON(t, router, http.MethodPost, "/api/contact-form", service.ContactForm{Name: "Иван"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ValidationRequired, decodeErrorBody(t, w).Error)
		assert.Empty(t, notifier.texts)
	})

	t.Run("delivery failure", func(t *testing.T) {
		router, _ := setupSiteControllerTest(t, &stubNotifier{err: errors.New("telegram down")})

		w := performJSON(t, router, http.MethodPost, "/api/contact-form", service.ContactForm{Phone: "123"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.InternalExternalAPI, decodeErrorBody(t, w).Error)
	})

	t.Run("not configured", func(t *testing.T) {
		router, _ := setupSiteControllerTest(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/contact-form", service.ContactForm{Phone: "123"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
