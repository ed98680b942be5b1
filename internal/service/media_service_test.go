package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMediaServiceTest(t *testing.T) (*MediaService, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ProductImage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	root := t.TempDir()
	svc := NewMediaService(
		repository.NewProductImageRepository(db),
		root,
		[]string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"},
	)
	return svc, root
}

func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatalf("write temp image failed: %v", err)
	}
	return path
}

func TestAttachImagesStoresUnderProductDir(t *testing.T) {
	svc, root := setupMediaServiceTest(t)
	src := writeTempImage(t, "photo.JPG")

	stored, err := svc.AttachImages("ELECTV1", []string{src})
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored file, got %d", len(stored))
	}
	if !strings.HasPrefix(stored[0], "ELECTV1/") || !strings.HasSuffix(stored[0], ".jpg") {
		t.Fatalf("unexpected relative path %q", stored[0])
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(stored[0]))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	images, err := svc.ListImages("ELECTV1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(images) != 1 || !images[0].IsPrimary {
		t.Fatalf("expected one primary image record, got %+v", images)
	}
	if images[0].MimeType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", images[0].MimeType)
	}
}

func TestAttachImagesSkipsDisallowedExtensions(t *testing.T) {
	svc, _ := setupMediaServiceTest(t)
	good := writeTempImage(t, "good.png")
	bad := writeTempImage(t, "notes.txt")

	stored, err := svc.AttachImages("ELECTV1", []string{bad, good})
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if len(stored) != 1 || !strings.HasSuffix(stored[0], ".png") {
		t.Fatalf("expected only the png stored, got %+v", stored)
	}
}

func TestAttachImagesOnlyFirstIsPrimary(t *testing.T) {
	svc, _ := setupMediaServiceTest(t)

	if _, err := svc.AttachImages("ELECTV1", []string{writeTempImage(t, "a.png")}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := svc.AttachImages("ELECTV1", []string{writeTempImage(t, "b.png")}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	images, err := svc.ListImages("ELECTV1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	primaries := 0
	for _, img := range images {
		if img.IsPrimary {
			primaries++
		}
	}
	if len(images) != 2 || primaries != 1 {
		t.Fatalf("expected 2 images with exactly one primary, got %d/%d", len(images), primaries)
	}
}

func TestDeleteImageRemovesRecordAndFile(t *testing.T) {
	svc, root := setupMediaServiceTest(t)
	if _, err := svc.AttachImages("ELECTV1", []string{writeTempImage(t, "a.png")}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	images, err := svc.ListImages("ELECTV1")
	if err != nil || len(images) != 1 {
		t.Fatalf("expected one image: %v", err)
	}

	if err := svc.DeleteImage(images[0].ImageID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(images[0].RelPath))); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := svc.DeleteImage(images[0].ImageID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestPurgeProductsRemovesDirectory(t *testing.T) {
	svc, root := setupMediaServiceTest(t)
	if _, err := svc.AttachImages("ELECTV1", []string{writeTempImage(t, "a.png")}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	svc.PurgeProducts([]string{"ELECTV1"})

	if _, err := os.Stat(filepath.Join(root, "ELECTV1")); !os.IsNotExist(err) {
		t.Fatalf("expected product dir removed, stat err=%v", err)
	}
}
