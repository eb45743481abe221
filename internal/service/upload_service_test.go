package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/config"
)

// TestModelObjectKey tests that object keys carry a full UUID (no truncation)
// and keep the original file extension.
func TestModelObjectKey(t *testing.T) {
	key := modelObjectKey("housing.stl")

	if !strings.HasPrefix(key, "models/") {
		t.Fatalf("expected models/ prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".stl") {
		t.Fatalf("expected .stl extension kept, got %q", key)
	}

	id := strings.TrimSuffix(strings.TrimPrefix(key, "models/"), ".stl")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a full UUID in key %q: %v", key, err)
	}

	// 无扩展名文件也合法
	bare := modelObjectKey("drawing")
	if strings.Contains(strings.TrimPrefix(bare, "models/"), ".") {
		t.Fatalf("expected no extension, got %q", bare)
	}
}

// TestUploadWithoutStorage tests the degraded mode when no object storage
// is configured.
func TestUploadWithoutStorage(t *testing.T) {
	svc := NewUploadService(nil, config.MinIOConfig{})

	_, err := svc.UploadModelFile(context.Background(), strings.NewReader("x"), 1, "model.stl", "model/stl")
	if !errors.Is(err, ErrStorageNotConfigured) {
		t.Fatalf("expected ErrStorageNotConfigured, got %v", err)
	}
}
