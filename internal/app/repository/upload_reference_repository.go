package repository

import (
	"regexp"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"gorm.io/gorm"
)

// UploadReferenceRepository collects every stored file path that some record still points at.
type UploadReferenceRepository interface {
	ReferencedPaths() (map[string]struct{}, error)
}

type uploadReferenceRepository struct {
	db      *gorm.DB
	pattern *regexp.Regexp
}

// NewUploadReferenceRepository recognises paths under the given upload directories.
func NewUploadReferenceRepository(db *gorm.DB, uploadDirs ...string) UploadReferenceRepository {
	return &uploadReferenceRepository{db: db, pattern: uploadPathPattern(uploadDirs)}
}

// uploadPathPattern finds root-relative upload paths inside rich text
func uploadPathPattern(dirs []string) *regexp.Regexp {
	quoted := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir != "" {
			quoted = append(quoted, regexp.QuoteMeta(dir))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`/(?:` + strings.Join(quoted, "|") + `)/[^"'\s)<>?#]+`)
}

type columnSource struct {
	model  interface{}
	column string
	rich   bool // scan the text for embedded paths instead of taking it whole
}

func (r *uploadReferenceRepository) ReferencedPaths() (map[string]struct{}, error) {
	sources := []columnSource{
		{&model.Category{}, "image", false},
		{&model.Category{}, "description", true},
		{&model.Product{}, "image", false},
		{&model.Product{}, "description", true},
		{&model.Product{}, "content", true},
		{&model.Color{}, "image", false},
		{&model.SliderPhoto{}, "image", false},
		{&model.PdfAttachment{}, "file_url", false},
		{&model.Advantage{}, "image", false},
		{&model.BlogPost{}, "image", false},
		{&model.BlogPost{}, "content", true},
	}

	paths := make(map[string]struct{})
	for _, src := range sources {
		var values []string
		if err := r.db.Model(src.model).Where(src.column+" <> ''").Pluck(src.column, &values).Error; err != nil {
			return nil, err
		}
		for _, v := range values {
			if !src.rich {
				// absolute URLs from the S3 backend reduce to their path
				if r.pattern != nil {
					if m := r.pattern.FindString(v); m != "" {
						v = m
					}
				}
				paths[v] = struct{}{}
				continue
			}
			if r.pattern == nil {
				continue
			}
			for _, m := range r.pattern.FindAllString(v, -1) {
				paths[m] = struct{}{}
			}
		}
	}
	return paths, nil
}
