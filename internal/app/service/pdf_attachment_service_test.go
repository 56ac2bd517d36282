package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFiles(t *testing.T, dir string) int {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestPdfAttachmentService_UploadAndDelete(t *testing.T) {
	testDB := setupServiceTest(t)
	uploadService, root := setupUploadServiceTest(t, 1<<20)
	pdfService := NewPdfAttachmentService(repository.NewPdfAttachmentRepository(testDB), uploadService, nil)
	product := seedProduct(t, testDB, "Откатные ворота", "otkatnye", nil)
	ctx := context.Background()

	pdf, err := pdfService.UploadAttachment(ctx, multipartFile(t, "passport.pdf", minimalPDF), " Паспорт изделия ", product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Паспорт изделия", pdf.Title)
	assert.Equal(t, 1, countFiles(t, filepath.Join(root, "pdf")))

	list, err := pdfService.ListAttachments(product.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pdf.FileURL, list[0].FileURL)

	require.NoError(t, pdfService.DeleteAttachment(ctx, pdf.ID))
	assert.Zero(t, countFiles(t, filepath.Join(root, "pdf")))
	assert.ErrorIs(t, pdfService.DeleteAttachment(ctx, pdf.ID), ErrPdfAttachmentNotFound)
}

func TestPdfAttachmentService_RollsBackFileOnMissingProduct(t *testing.T) {
	testDB := setupServiceTest(t)
	uploadService, root := setupUploadServiceTest(t, 1<<20)
	pdfService := NewPdfAttachmentService(repository.NewPdfAttachmentRepository(testDB), uploadService, nil)

	_, err := pdfService.UploadAttachment(context.Background(), multipartFile(t, "passport.pdf", minimalPDF), "Паспорт", 4242)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "productId", verr.Field)
	assert.Zero(t, countFiles(t, filepath.Join(root, "pdf")))
}

func TestPdfAttachmentService_Validation(t *testing.T) {
	testDB := setupServiceTest(t)
	uploadService, _ := setupUploadServiceTest(t, 1<<20)
	pdfService := NewPdfAttachmentService(repository.NewPdfAttachmentRepository(testDB), uploadService, nil)
	ctx := context.Background()

	_, err := pdfService.UploadAttachment(ctx, nil, "Паспорт", 1)
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = pdfService.UploadAttachment(ctx, multipartFile(t, "passport.pdf", minimalPDF), "", 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = pdfService.UploadAttachment(ctx, multipartFile(t, "passport.pdf", minimalPDF), "Паспорт", 0)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "productId", verr.Field)

	_, err = pdfService.ListAttachments(0)
	assert.ErrorAs(t, err, &verr)
}
