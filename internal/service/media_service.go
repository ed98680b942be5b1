package service

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/google/uuid"
)

// MediaService stores product images on disk and tracks them in the
// product_images table. Files live under <root>/<prod_id>/<uuid><ext>;
// the database keeps paths relative to the root so the tree can move.
type MediaService struct {
	images     repository.ProductImageRepository
	root       string
	allowedExt map[string]struct{}
}

// NewMediaService creates the media service
func NewMediaService(images repository.ProductImageRepository, root string, allowedExtensions []string) *MediaService {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}
	return &MediaService{
		images:     images,
		root:       root,
		allowedExt: allowed,
	}
}

// AttachImages copies the given source files into the product's media
// directory and records them. Files with a disallowed extension or that
// fail to copy are skipped with a warning; the rest still attach.
// Returns the relative paths of the stored files.
func (s *MediaService) AttachImages(prodID string, srcPaths []string) ([]string, error) {
	if len(srcPaths) == 0 {
		return nil, nil
	}
	dir := filepath.Join(s.root, prodID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	existing, err := s.images.ListByProduct(prodID)
	if err != nil {
		return nil, err
	}
	hasPrimary := false
	for _, img := range existing {
		if img.IsPrimary {
			hasPrimary = true
			break
		}
	}
	var stored []string
	for _, src := range srcPaths {
		ext := strings.ToLower(filepath.Ext(src))
		if _, ok := s.allowedExt[ext]; !ok {
			logger.Warnw("image_extension_rejected", "prod_id", prodID, "file", src)
			continue
		}
		imageID := uuid.NewString()
		dst := filepath.Join(dir, imageID+ext)
		if err := copyFile(src, dst); err != nil {
			logger.Warnw("image_copy_failed", "prod_id", prodID, "file", src, "err", err)
			continue
		}
		relPath := filepath.ToSlash(filepath.Join(prodID, imageID+ext))
		image := models.ProductImage{
			ImageID:   imageID,
			ProdID:    prodID,
			RelPath:   relPath,
			MimeType:  mime.TypeByExtension(ext),
			IsPrimary: !hasPrimary,
		}
		if err := s.images.Create(&image); err != nil {
			os.Remove(dst)
			return stored, err
		}
		hasPrimary = true
		stored = append(stored, relPath)
	}
	return stored, nil
}

// ListImages lists a product's image records, primary-eligible order
func (s *MediaService) ListImages(prodID string) ([]models.ProductImage, error) {
	return s.images.ListByProduct(prodID)
}

// AbsolutePath resolves a stored relative path against the media root
func (s *MediaService) AbsolutePath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// DeleteImage removes an image record and its file. A missing file is
// not an error; the record is authoritative.
func (s *MediaService) DeleteImage(imageID string) error {
	image, err := s.images.GetByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrNotFound
	}
	if err := s.images.Delete(imageID); err != nil {
		return err
	}
	if err := os.Remove(s.AbsolutePath(image.RelPath)); err != nil && !os.IsNotExist(err) {
		logger.Warnw("image_file_remove_failed", "path", image.RelPath, "err", err)
	}
	return nil
}

// PurgeProducts removes the media directories of deleted products. Rows
// are deleted by the caller's transaction; this only cleans the disk.
func (s *MediaService) PurgeProducts(prodIDs []string) {
	for _, prodID := range prodIDs {
		if prodID == "" {
			continue
		}
		dir := filepath.Join(s.root, prodID)
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnw("media_purge_failed", "prod_id", prodID, "err", err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
