package service

import (
	"context"
	"errors"
	"testing"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/testutil"
)

// TestCustomerCRUD tests the customer lifecycle with keyword search.
func TestCustomerCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewCustomerService(repos.Customer)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CustomerRequest{
		Name:    "Công ty ABC",
		Phone:   "0901234567",
		Address: "Hà Nội",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, &CustomerRequest{Name: "Xưởng cơ khí XYZ"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := svc.List(ctx, 1, 20, "ABC")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != created.ID {
		t.Fatalf("keyword search failed: total=%d", result.Total)
	}

	updated, err := svc.Update(ctx, created.ID, &CustomerRequest{
		Name:  "Công ty ABC",
		Phone: "0907654321",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Phone != "0907654321" {
		t.Fatalf("expected updated phone, got %q", updated.Phone)
	}

	var nfErr *NotFoundError
	if _, err := svc.Get(ctx, 99999); !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

// TestCustomerDeleteClearsTransformerReference tests that deleting a customer
// keeps their transformers but detaches the reference.
func TestCustomerDeleteClearsTransformerReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewCustomerService(repos.Customer)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &CustomerRequest{Name: "Công ty ABC"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	transformer := entity.Transformer{
		Name:       "TX-001",
		Type:       entity.TransformerTypeRound,
		TotalCost:  100000,
		CustomerID: &customer.ID,
	}
	if err := db.Create(&transformer).Error; err != nil {
		t.Fatalf("Failed to seed transformer: %v", err)
	}

	if err := svc.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var reread entity.Transformer
	if err := db.First(&reread, transformer.ID).Error; err != nil {
		t.Fatalf("transformer must survive customer delete: %v", err)
	}
	if reread.CustomerID != nil {
		t.Fatalf("expected customer reference cleared, got %v", *reread.CustomerID)
	}

	var nfErr *NotFoundError
	if err := svc.Delete(ctx, customer.ID); !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError on second delete, got %v", err)
	}
}
