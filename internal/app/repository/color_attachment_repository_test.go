package repository

import (
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestColorAttachmentRepository_UniquePair(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewColorAttachmentRepository(testDB)
	product := createTestProduct(t, testDB, "Gate", "gate", nil)
	color := &model.Color{Name: "Brown"}
	require.NoError(t, testDB.Create(color).Error)

	require.NoError(t, repo.Create(&model.ColorAttachment{ColorID: color.ID, ProductID: product.ID}))
	err := repo.Create(&model.ColorAttachment{ColorID: color.ID, ProductID: product.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	attachments, err := repo.FindByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	require.NotNil(t, attachments[0].Color)
	assert.Equal(t, "Brown", attachments[0].Color.Name)
}

func TestColorAttachmentRepository_Detach(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewColorAttachmentRepository(testDB)
	product := createTestProduct(t, testDB, "Gate", "gate", nil)
	other := createTestProduct(t, testDB, "Door", "door", nil)

	var colors []model.Color
	for _, name := range []string{"White", "Brown", "Grey"} {
		c := model.Color{Name: name}
		require.NoError(t, testDB.Create(&c).Error)
		colors = append(colors, c)
		require.NoError(t, repo.Create(&model.ColorAttachment{ColorID: c.ID, ProductID: product.ID}))
	}
	require.NoError(t, repo.Create(&model.ColorAttachment{ColorID: colors[0].ID, ProductID: other.ID}))

	require.NoError(t, repo.DeletePair(colors[0].ID, product.ID))
	assert.ErrorIs(t, repo.DeletePair(colors[0].ID, product.ID), gorm.ErrRecordNotFound)

	count, err := repo.DeleteAllByProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := repo.FindByProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	untouched, err := repo.FindByProduct(other.ID)
	require.NoError(t, err)
	assert.Len(t, untouched, 1)
}

func TestColorRepository_DeleteRemovesAttachments(t *testing.T) {
	testDB := setupRepositoryTest(t)
	colorRepo := NewColorRepository(testDB)
	attachRepo := NewColorAttachmentRepository(testDB)
	product := createTestProduct(t, testDB, "Gate", "gate", nil)

	color := &model.Color{Name: "White"}
	require.NoError(t, colorRepo.Create(color))
	require.NoError(t, attachRepo.Create(&model.ColorAttachment{ColorID: color.ID, ProductID: product.ID}))

	detached, err := colorRepo.Delete(color.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detached)

	var orphans int64
	testDB.Model(&model.ColorAttachment{}).Where("color_id = ?", color.ID).Count(&orphans)
	assert.Zero(t, orphans)

	_, err = colorRepo.Delete(color.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
