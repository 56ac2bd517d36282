package service

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Build(t *testing.T) {
	testDB := setupServiceTest(t)
	svc := NewSitemapService(repository.NewCategoryRepository(testDB), repository.NewProductRepository(testDB), "https://doorhan.example")
	svc.(*sitemapService).now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	gates := seedCategory(t, testDB, "Ворота", "vorota", "")
	seedProduct(t, testDB, "Откатные ворота", "otkatnye", &gates.ID)
	seedProduct(t, testDB, "Без категории", "orphan", nil)

	body, err := svc.Build()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), xml.Header))

	var parsed sitemapURLSet
	require.NoError(t, xml.Unmarshal(body, &parsed))
	assert.Equal(t, sitemapNamespace, parsed.XMLNS)

	locs := make(map[string]string, len(parsed.URLs))
	for _, u := range parsed.URLs {
		locs[u.Loc] = u.Priority
	}
	assert.Equal(t, map[string]string{
		"https://doorhan.example":                       "1.0",
		"https://doorhan.example/posts":                 "0.8",
		"https://doorhan.example/blogs":                 "0.5",
		"https://doorhan.example/posts/vorota":          "0.7",
		"https://doorhan.example/posts/vorota/otkatnye": "0.6",
	}, locs)
	assert.Equal(t, "2024-05-01", parsed.URLs[0].LastMod)
}
