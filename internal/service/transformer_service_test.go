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

func setupTransformerService(t *testing.T) (*gorm.DB, *TransformerService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewTransformerService(repos.Transformer, repos.Lamination, repos.WindingSpec, repos.Accessory, repos.Customer)
	return db, svc
}

// catalogFixture holds seeded catalog rows for assembly tests
type catalogFixture struct {
	copperSpec   entity.WindingSpec
	aluminumSpec entity.WindingSpec
	bracket      entity.Accessory
	lamination   entity.EiLamination
	core         entity.EiCore
	bareLam      entity.EiLamination // 没有配套骨架
}

func seedCatalog(t *testing.T, db *gorm.DB) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		copperSpec: entity.WindingSpec{
			Name:       "Cu 0.5mm",
			Type:       entity.WindingRolePrimary,
			Material:   entity.WindingMaterialCopper,
			Diameter:   0.5,
			PricePerKg: 200000,
		},
		aluminumSpec: entity.WindingSpec{
			Name:       "Al 0.8mm",
			Type:       entity.WindingRoleSecondary,
			Material:   entity.WindingMaterialAluminum,
			Diameter:   0.8,
			PricePerKg: 150000,
		},
		bracket: entity.Accessory{
			Type:      entity.AccessoryTypeBracket,
			Name:      "Mounting bracket",
			UnitType:  entity.AccessoryUnitPCS,
			UnitPrice: 2000,
		},
		lamination: entity.EiLamination{
			Name:       "EI-66",
			PricePerKg: 50000,
		},
		bareLam: entity.EiLamination{
			Name:       "EI-41",
			PricePerKg: 30000,
		},
	}

	for _, row := range []interface{}{
		&f.copperSpec, &f.aluminumSpec, &f.bracket, &f.lamination, &f.bareLam,
	} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	f.core = entity.EiCore{
		LaminationID: f.lamination.ID,
		Name:         "EI-66 bobbin",
		Price:        10000,
	}
	if err := db.Create(&f.core).Error; err != nil {
		t.Fatalf("Failed to seed core: %v", err)
	}
	return f
}

func squareRequest(f *catalogFixture) *SquareTransformerRequest {
	return &SquareTransformerRequest{
		Name:               "TX-SQ-001",
		EiLaminationID:     f.lamination.ID,
		LaminationWeightKg: 2.0,
		Windings: []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.5},
			{WindingSpecID: f.aluminumSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 1.0},
		},
		Accessories: []AccessoryUsageRequest{
			{AccessoryID: f.bracket.ID, Quantity: 5},
		},
	}
}

// TestCreateSquareTransformer tests that a square assembly snapshots every
// line cost and the total: core 2.0*50000+10000=110000, copper 0.5*200000=100000,
// aluminum 1.0*150000=150000, brackets 5*2000=10000, total 370000.
func TestCreateSquareTransformer(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	detail, err := svc.CreateSquare(ctx, squareRequest(f))
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	if detail.Type != entity.TransformerTypeSquare {
		t.Fatalf("expected type square, got %s", detail.Type)
	}
	if detail.TotalCost != 370000 {
		t.Fatalf("expected total 370000, got %v", detail.TotalCost)
	}
	if detail.SquareCore == nil {
		t.Fatal("expected square core detail")
	}
	if detail.SquareCore.Cost != 110000 {
		t.Fatalf("expected core cost 110000, got %v", detail.SquareCore.Cost)
	}
	if detail.SquareCore.LaminationCost != 100000 {
		t.Fatalf("expected lamination cost 100000, got %v", detail.SquareCore.LaminationCost)
	}
	if detail.SquareCore.CorePrice != 10000 {
		t.Fatalf("expected core price 10000, got %v", detail.SquareCore.CorePrice)
	}
	if detail.SquareCore.CoreName != "EI-66 bobbin" {
		t.Fatalf("expected core name from catalog, got %q", detail.SquareCore.CoreName)
	}
	if detail.RoundCore != nil {
		t.Fatal("square transformer must not carry a round core")
	}
	if len(detail.Windings) != 2 {
		t.Fatalf("expected 2 windings, got %d", len(detail.Windings))
	}
	if detail.Windings[0].Cost != 100000 || detail.Windings[1].Cost != 150000 {
		t.Fatalf("unexpected winding costs: %v, %v", detail.Windings[0].Cost, detail.Windings[1].Cost)
	}
	if len(detail.Accessories) != 1 || detail.Accessories[0].Cost != 10000 {
		t.Fatalf("unexpected accessory lines: %+v", detail.Accessories)
	}
}

// TestCreateRoundTransformer tests round assembly with a caller-supplied core.
func TestCreateRoundTransformer(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	detail, err := svc.CreateRound(ctx, &RoundTransformerRequest{
		Name:           "TX-RD-001",
		CoreWeightKg:   3.0,
		CorePricePerKg: 45000,
		Windings: []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.4},
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 0.6},
		},
	})
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	if detail.Type != entity.TransformerTypeRound {
		t.Fatalf("expected type round, got %s", detail.Type)
	}
	if detail.RoundCore == nil || detail.RoundCore.Cost != 135000 {
		t.Fatalf("expected round core cost 135000, got %+v", detail.RoundCore)
	}
	// 135000 + 0.4*200000 + 0.6*200000
	if detail.TotalCost != 335000 {
		t.Fatalf("expected total 335000, got %v", detail.TotalCost)
	}
	if detail.SquareCore != nil {
		t.Fatal("round transformer must not carry a square core")
	}
}

// TestTotalCostIsSnapshot tests that later catalog price changes do not
// affect a saved quote.
func TestTotalCostIsSnapshot(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	detail, err := svc.CreateSquare(ctx, squareRequest(f))
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	// 目录涨价
	if err := db.Model(&entity.WindingSpec{}).Where("id = ?", f.copperSpec.ID).
		Update("price_per_kg", 999999).Error; err != nil {
		t.Fatalf("Failed to update catalog price: %v", err)
	}

	reread, err := svc.Get(ctx, detail.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reread.TotalCost != detail.TotalCost {
		t.Fatalf("total changed after catalog update: %v -> %v", detail.TotalCost, reread.TotalCost)
	}
	if reread.Windings[0].Cost != 100000 {
		t.Fatalf("winding snapshot changed: %v", reread.Windings[0].Cost)
	}
}

// TestUpdateReplacesUsageRows tests the replace-all-children update: old
// winding and accessory rows are discarded, never merged.
func TestUpdateReplacesUsageRows(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	created, err := svc.CreateSquare(ctx, squareRequest(f))
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	updated, err := svc.UpdateSquare(ctx, created.ID, &SquareTransformerRequest{
		Name:               "TX-SQ-001-rev2",
		EiLaminationID:     f.lamination.ID,
		LaminationWeightKg: 1.0,
		Windings: []WindingUsageRequest{
			{WindingSpecID: f.aluminumSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 2.0},
			{WindingSpecID: f.aluminumSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 1.0},
		},
	})
	if err != nil {
		t.Fatalf("UpdateSquare failed: %v", err)
	}

	if updated.Name != "TX-SQ-001-rev2" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	// core 1.0*50000+10000 + 2.0*150000 + 1.0*150000
	if updated.TotalCost != 510000 {
		t.Fatalf("expected total 510000, got %v", updated.TotalCost)
	}
	if len(updated.Windings) != 2 {
		t.Fatalf("expected 2 windings after replace, got %d", len(updated.Windings))
	}
	for _, w := range updated.Windings {
		if w.WindingSpecID != f.aluminumSpec.ID {
			t.Fatalf("old winding row survived the replace: %+v", w)
		}
	}
	if len(updated.Accessories) != 0 {
		t.Fatalf("expected accessory rows discarded, got %d", len(updated.Accessories))
	}

	// 库里不能留任何旧行
	var windingCount, accessoryCount int64
	db.Model(&entity.TransformerWinding{}).Where("transformer_id = ?", created.ID).Count(&windingCount)
	db.Model(&entity.TransformerAccessoryUsage{}).Where("transformer_id = ?", created.ID).Count(&accessoryCount)
	if windingCount != 2 || accessoryCount != 0 {
		t.Fatalf("expected 2 winding rows and 0 accessory rows, got %d and %d", windingCount, accessoryCount)
	}
}

// TestUpdateShapeImmutable tests that a square transformer cannot be
// updated through the round endpoint and vice versa.
func TestUpdateShapeImmutable(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	created, err := svc.CreateSquare(ctx, squareRequest(f))
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	_, err = svc.UpdateRound(ctx, created.ID, &RoundTransformerRequest{
		Name:           "TX-RD-illegal",
		CoreWeightKg:   1.0,
		CorePricePerKg: 40000,
		Windings: []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.3},
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 0.3},
		},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError for shape change, got %v", err)
	}
}

// TestCreateSquareLaminationWithoutCore tests that a lamination with no
// paired core is a conflict and persists nothing.
func TestCreateSquareLaminationWithoutCore(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	req := squareRequest(f)
	req.EiLaminationID = f.bareLam.ID

	_, err := svc.CreateSquare(ctx, req)
	var iErr *IntegrityError
	if !errors.As(err, &iErr) {
		t.Fatalf("expected *IntegrityError, got %v", err)
	}

	var count int64
	db.Model(&entity.Transformer{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no transformer persisted, got %d", count)
	}
}

// TestCreateRejectsBadWindingComposition tests the winding composition rule
// at the service boundary, including the empty list.
func TestCreateRejectsBadWindingComposition(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	cases := []struct {
		name     string
		windings []WindingUsageRequest
	}{
		{"empty", nil},
		{"two primaries", []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.5},
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.5},
			{WindingSpecID: f.aluminumSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 0.5},
		}},
		{"auxiliary only", []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRoleAuxiliary, WeightKg: 0.5},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := squareRequest(f)
			req.Windings = tc.windings

			_, err := svc.CreateSquare(ctx, req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&entity.Transformer{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no transformer persisted, got %d", count)
	}
}

// TestCreateMissingCatalogReference tests that dangling catalog ids map to
// not-found errors and persist nothing.
func TestCreateMissingCatalogReference(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	req := squareRequest(f)
	req.Windings[0].WindingSpecID = 99999

	_, err := svc.CreateSquare(ctx, req)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.Resource != "winding spec" {
		t.Fatalf("expected winding spec not found, got %q", nfErr.Resource)
	}

	req2 := squareRequest(f)
	req2.EiLaminationID = 99999
	_, err = svc.CreateSquare(ctx, req2)
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError for lamination, got %v", err)
	}

	var count int64
	db.Model(&entity.Transformer{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no transformer persisted, got %d", count)
	}
}

// TestDeleteRemovesUsageRows tests that delete removes the aggregate and
// every usage row, and that a second delete reports not found.
func TestDeleteRemovesUsageRows(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	created, err := svc.CreateSquare(ctx, squareRequest(f))
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	for name, model := range map[string]interface{}{
		"square core": &entity.SquareCoreUsage{},
		"windings":    &entity.TransformerWinding{},
		"accessories": &entity.TransformerAccessoryUsage{},
	} {
		var count int64
		db.Model(model).Where("transformer_id = ?", created.ID).Count(&count)
		if count != 0 {
			t.Fatalf("expected %s rows removed, got %d", name, count)
		}
	}

	_, err = svc.Get(ctx, created.ID)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError after delete, got %v", err)
	}

	err = svc.Delete(ctx, created.ID)
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError on second delete, got %v", err)
	}
}

// TestCustomerReference tests the optional customer link on create.
func TestCustomerReference(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	customer := entity.Customer{Name: "Công ty ABC", Phone: "0901234567"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}

	req := squareRequest(f)
	req.CustomerID = &customer.ID

	detail, err := svc.CreateSquare(ctx, req)
	if err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}
	if detail.Customer == nil || detail.Customer.ID != customer.ID {
		t.Fatalf("expected customer summary, got %+v", detail.Customer)
	}

	// 引用不存在的客户
	badID := int64(99999)
	req2 := squareRequest(f)
	req2.CustomerID = &badID
	_, err = svc.CreateSquare(ctx, req2)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError for missing customer, got %v", err)
	}
}

// TestListTransformers tests paging and the type filter.
func TestListTransformers(t *testing.T) {
	db, svc := setupTransformerService(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	if _, err := svc.CreateSquare(ctx, squareRequest(f)); err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}
	if _, err := svc.CreateRound(ctx, &RoundTransformerRequest{
		Name:           "TX-RD-001",
		CoreWeightKg:   1.0,
		CorePricePerKg: 40000,
		Windings: []WindingUsageRequest{
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRolePrimary, WeightKg: 0.3},
			{WindingSpecID: f.copperSpec.ID, Role: entity.WindingRoleSecondary, WeightKg: 0.3},
		},
	}); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	all, err := svc.List(ctx, 1, 20, map[string]interface{}{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all.Total != 2 || len(all.Items) != 2 {
		t.Fatalf("expected 2 transformers, got total=%d items=%d", all.Total, len(all.Items))
	}

	squares, err := svc.List(ctx, 1, 20, map[string]interface{}{"type": entity.TransformerTypeSquare})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if squares.Total != 1 || squares.Items[0].Type != entity.TransformerTypeSquare {
		t.Fatalf("type filter failed: total=%d", squares.Total)
	}
}
