package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/testutil"
)

func setupCatalogService(t *testing.T) (*gorm.DB, *CatalogService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	// 测试不挂Redis，缓存层直接穿透
	svc := NewCatalogService(repos.WindingSpec, repos.Accessory, repos.Lamination, nil)
	return db, svc
}

// TestWindingSpecCRUD tests the winding spec lifecycle.
func TestWindingSpecCRUD(t *testing.T) {
	_, svc := setupCatalogService(t)
	ctx := context.Background()

	spec, err := svc.CreateWindingSpec(ctx, &WindingSpecRequest{
		Name:       "Cu 0.5mm",
		Type:       entity.WindingRolePrimary,
		Material:   entity.WindingMaterialCopper,
		Diameter:   0.5,
		PricePerKg: 200000,
	})
	if err != nil {
		t.Fatalf("CreateWindingSpec failed: %v", err)
	}
	if spec.ID == 0 {
		t.Fatal("expected assigned id")
	}

	updated, err := svc.UpdateWindingSpec(ctx, spec.ID, &WindingSpecRequest{
		Name:       "Cu 0.5mm",
		Type:       entity.WindingRolePrimary,
		Material:   entity.WindingMaterialCopper,
		Diameter:   0.5,
		PricePerKg: 210000,
	})
	if err != nil {
		t.Fatalf("UpdateWindingSpec failed: %v", err)
	}
	if updated.PricePerKg != 210000 {
		t.Fatalf("expected updated price, got %v", updated.PricePerKg)
	}

	specs, err := svc.ListWindingSpecs(ctx)
	if err != nil {
		t.Fatalf("ListWindingSpecs failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(specs))
	}

	if err := svc.DeleteWindingSpec(ctx, spec.ID); err != nil {
		t.Fatalf("DeleteWindingSpec failed: %v", err)
	}

	var nfErr *NotFoundError
	if err := svc.DeleteWindingSpec(ctx, spec.ID); !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError on second delete, got %v", err)
	}
}

// TestAccessoryCRUD tests the accessory lifecycle.
func TestAccessoryCRUD(t *testing.T) {
	_, svc := setupCatalogService(t)
	ctx := context.Background()

	accessory, err := svc.CreateAccessory(ctx, &AccessoryRequest{
		Type:      entity.AccessoryTypeTerminal,
		Name:      "Terminal block",
		UnitType:  entity.AccessoryUnitPCS,
		UnitPrice: 1500,
	})
	if err != nil {
		t.Fatalf("CreateAccessory failed: %v", err)
	}

	updated, err := svc.UpdateAccessory(ctx, accessory.ID, &AccessoryRequest{
		Type:      entity.AccessoryTypeTerminal,
		Name:      "Terminal block",
		UnitType:  entity.AccessoryUnitSet,
		UnitPrice: 5000,
	})
	if err != nil {
		t.Fatalf("UpdateAccessory failed: %v", err)
	}
	if updated.UnitType != entity.AccessoryUnitSet || updated.UnitPrice != 5000 {
		t.Fatalf("unexpected accessory after update: %+v", updated)
	}

	var nfErr *NotFoundError
	if _, err := svc.UpdateAccessory(ctx, 99999, &AccessoryRequest{
		Type:      entity.AccessoryTypeOther,
		Name:      "x",
		UnitType:  entity.AccessoryUnitPCS,
		UnitPrice: 1,
	}); !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

// TestEiLaminationWithCore tests the combined lamination+core resource:
// create pairs both rows, the list view joins them, delete cascades.
func TestEiLaminationWithCore(t *testing.T) {
	db, svc := setupCatalogService(t)
	ctx := context.Background()

	view, err := svc.CreateEiLamination(ctx, &EiLaminationRequest{
		Name:       "EI-66",
		PricePerKg: 50000,
		Core: &EiCoreFields{
			Name:  "EI-66 bobbin",
			Price: 10000,
		},
	})
	if err != nil {
		t.Fatalf("CreateEiLamination failed: %v", err)
	}
	if view.CoreID == nil || view.CoreName != "EI-66 bobbin" || view.CorePrice != 10000 {
		t.Fatalf("expected paired core in view, got %+v", view)
	}

	// 无骨架的硅钢片也允许入库，装配时才报冲突
	bare, err := svc.CreateEiLamination(ctx, &EiLaminationRequest{
		Name:       "EI-41",
		PricePerKg: 30000,
	})
	if err != nil {
		t.Fatalf("CreateEiLamination without core failed: %v", err)
	}
	if bare.CoreID != nil {
		t.Fatalf("expected no core, got %+v", bare)
	}

	views, err := svc.ListEiLaminations(ctx)
	if err != nil {
		t.Fatalf("ListEiLaminations failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 laminations, got %d", len(views))
	}

	// 更新同时改硅钢片价格和骨架价格
	updated, err := svc.UpdateEiLamination(ctx, view.ID, &EiLaminationRequest{
		Name:       "EI-66",
		PricePerKg: 55000,
		Core: &EiCoreFields{
			Name:  "EI-66 bobbin v2",
			Price: 12000,
		},
	})
	if err != nil {
		t.Fatalf("UpdateEiLamination failed: %v", err)
	}
	if updated.PricePerKg != 55000 || updated.CorePrice != 12000 {
		t.Fatalf("unexpected lamination after update: %+v", updated)
	}

	// 原来没骨架的，更新时可以补上
	patched, err := svc.UpdateEiLamination(ctx, bare.ID, &EiLaminationRequest{
		Name:       "EI-41",
		PricePerKg: 30000,
		Core: &EiCoreFields{
			Name:  "EI-41 bobbin",
			Price: 8000,
		},
	})
	if err != nil {
		t.Fatalf("UpdateEiLamination failed: %v", err)
	}
	if patched.CoreID == nil || patched.CoreName != "EI-41 bobbin" {
		t.Fatalf("expected core attached on update, got %+v", patched)
	}

	if err := svc.DeleteEiLamination(ctx, view.ID); err != nil {
		t.Fatalf("DeleteEiLamination failed: %v", err)
	}

	var coreCount int64
	db.Model(&entity.EiCore{}).Where("lamination_id = ?", view.ID).Count(&coreCount)
	if coreCount != 0 {
		t.Fatalf("expected paired core removed with lamination, got %d", coreCount)
	}
}
