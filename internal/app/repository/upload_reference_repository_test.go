package repository

import (
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadReferenceRepository_ReferencedPaths(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewUploadReferenceRepository(testDB, "img/upload", "pdf")

	product := createTestProduct(t, testDB, "Gate", "gate", nil)
	require.NoError(t, testDB.Model(product).Updates(map[string]interface{}{
		"image":   "/img/upload/cover.jpg",
		"content": `<p><img src="/img/upload/inline.png"> see <a href='/pdf/manual.pdf'>manual</a></p>`,
	}).Error)
	require.NoError(t, testDB.Omit("Product").Create(&model.PdfAttachment{Title: "Cert", FileURL: "/pdf/cert.pdf", ProductID: product.ID}).Error)
	require.NoError(t, testDB.Create(&model.Color{Name: "White", Image: "/img/upload/white.png"}).Error)

	paths, err := repo.ReferencedPaths()
	require.NoError(t, err)

	for _, p := range []string{"/img/upload/cover.jpg", "/img/upload/inline.png", "/pdf/manual.pdf", "/pdf/cert.pdf", "/img/upload/white.png"} {
		assert.Contains(t, paths, p)
	}
	assert.NotContains(t, paths, "")
}

func TestUploadReferenceRepository_AbsoluteURLReducedToPath(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewUploadReferenceRepository(testDB, "img/upload", "pdf")

	require.NoError(t, testDB.Create(&model.Color{Name: "Black", Image: "https://cdn.example.com/img/upload/black.png"}).Error)

	paths, err := repo.ReferencedPaths()
	require.NoError(t, err)
	assert.Contains(t, paths, "/img/upload/black.png")
}

func TestUploadReferenceRepository_CustomDirectories(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewUploadReferenceRepository(testDB, "/uploads/images/", "uploads/docs")

	product := createTestProduct(t, testDB, "Gate", "gate", nil)
	require.NoError(t, testDB.Model(product).Updates(map[string]interface{}{
		"content": `<img src="/uploads/images/inline.png"><a href="/uploads/docs/manual.pdf">manual</a><img src="/img/upload/legacy.png">`,
	}).Error)

	paths, err := repo.ReferencedPaths()
	require.NoError(t, err)
	assert.Contains(t, paths, "/uploads/images/inline.png")
	assert.Contains(t, paths, "/uploads/docs/manual.pdf")
	assert.NotContains(t, paths, "/img/upload/legacy.png")
}
