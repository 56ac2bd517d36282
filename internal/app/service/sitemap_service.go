package service

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapService interface {
	// Build renders sitemap.xml for the home page, the catalog, every category
	// and every categorized product.
	Build() ([]byte, error)
}

type sitemapService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	baseURL      string
	now          func() time.Time
}

func NewSitemapService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, baseURL string) SitemapService {
	return &sitemapService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		baseURL:      baseURL,
		now:          time.Now,
	}
}

func (s *sitemapService) Build() ([]byte, error) {
	categories, err := s.categoryRepo.FindAll(repository.CategoryFilter{})
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format("2006-01-02")
	urls := []SitemapURL{
		{Loc: s.baseURL, LastMod: today, ChangeFreq: "daily", Priority: sitemapPriority(1.0)},
		{Loc: s.baseURL + "/" + catalogSection, LastMod: today, ChangeFreq: "daily", Priority: sitemapPriority(0.8)},
		{Loc: s.baseURL + "/blogs", LastMod: today, ChangeFreq: "weekly", Priority: sitemapPriority(0.5)},
	}
	for _, c := range categories {
		urls = append(urls, SitemapURL{
			Loc:        s.baseURL + "/" + catalogSection + "/" + slugOrID(c.Slug, c.ID),
			LastMod:    c.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   sitemapPriority(0.7),
		})
	}
	for _, p := range products {
		if p.Category == nil {
			continue
		}
		urls = append(urls, SitemapURL{
			Loc:        s.baseURL + "/" + catalogSection + "/" + slugOrID(p.Category.Slug, p.Category.ID) + "/" + slugOrID(p.Slug, p.ID),
			LastMod:    p.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   sitemapPriority(0.6),
		})
	}

	body, err := xml.MarshalIndent(sitemapURLSet{XMLNS: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// sitemapPriority always prints one decimal, e.g. 1.0
func sitemapPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
