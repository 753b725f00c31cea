//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/partsdesk/partsdesk/internal/model"
	"github.com/partsdesk/partsdesk/internal/testutil"
)

// ============================================================================
// Parts Catalog Integration Tests
// ============================================================================

func seedPart(ctx context.Context, t *testing.T, repo *Repository, p *model.Part) {
	t.Helper()

	_, err := repo.Pool().Exec(ctx, `
		INSERT INTO parts (id, part_number, name, description, category, manufacturer,
			price, stock_quantity, featured, compatibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`,
		p.ID, p.PartNumber, p.Name, p.Description, p.Category, p.Manufacturer,
		p.Price, p.StockQuantity, p.Featured, pq.Array(p.Compatibility), p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed part %s: %v", p.PartNumber, err)
	}
}

func TestIntegrationGetPartByIdentifier(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	part := testutil.NewTestPart(t, testutil.UniqueID("HP"))
	seedPart(ctx, t, repo, part)

	stored, err := repo.GetPartByIdentifier(ctx, part.PartNumber)
	if err != nil {
		t.Fatalf("GetPartByIdentifier failed: %v", err)
	}
	if stored.Name != part.Name {
		t.Errorf("Name = %q, want %q", stored.Name, part.Name)
	}
	if len(stored.Compatibility) != len(part.Compatibility) {
		t.Errorf("Compatibility length = %d, want %d", len(stored.Compatibility), len(part.Compatibility))
	}
}

func TestIntegrationGetPartByIdentifier_NotFound(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	if _, err := repo.GetPartByIdentifier(ctx, "NO-SUCH-PART"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("Expected ErrPartNotFound, got: %v", err)
	}
}

func TestIntegrationListParts_FullTextSearch(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	pump := testutil.NewTestPart(t, testutil.UniqueID("PMP"))
	pump.Name = "Hydraulic gear pump"
	pump.Description = "High pressure hydraulic pump for industrial presses"
	seedPart(ctx, t, repo, pump)

	valve := testutil.NewTestPart(t, testutil.UniqueID("VLV"))
	valve.Name = "Relief valve"
	valve.Description = "Pressure relief valve"
	valve.Category = "valves"
	seedPart(ctx, t, repo, valve)

	parts, total, err := repo.ListParts(ctx, PartFilter{Query: "hydraulic pump"}, ClampPage(1, 20))
	if err != nil {
		t.Fatalf("ListParts failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("Total = %d, want 1", total)
	}
	if parts[0].PartNumber != pump.PartNumber {
		t.Errorf("Expected the pump to match, got %s", parts[0].PartNumber)
	}
}

func TestIntegrationListParts_CombinedFilters(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	cheap := testutil.NewTestPart(t, testutil.UniqueID("CHP"))
	cheap.Price = 9.99
	cheap.Category = "seals"
	seedPart(ctx, t, repo, cheap)

	costly := testutil.NewTestPart(t, testutil.UniqueID("CST"))
	costly.Price = 499.0
	costly.Category = "seals"
	seedPart(ctx, t, repo, costly)

	outOfStock := testutil.NewTestPart(t, testutil.UniqueID("OOS"))
	outOfStock.Price = 499.0
	outOfStock.Category = "seals"
	outOfStock.StockQuantity = 0
	seedPart(ctx, t, repo, outOfStock)

	inStock := true
	minPrice := 100.0
	parts, total, err := repo.ListParts(ctx, PartFilter{
		Category: "seals",
		InStock:  &inStock,
		MinPrice: &minPrice,
	}, ClampPage(1, 20))
	if err != nil {
		t.Fatalf("ListParts failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("Total = %d, want 1", total)
	}
	if parts[0].PartNumber != costly.PartNumber {
		t.Errorf("Expected the in-stock costly part, got %s", parts[0].PartNumber)
	}
}

func TestIntegrationFeaturedParts(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	for i := 0; i < 3; i++ {
		p := testutil.NewTestPart(t, testutil.UniqueID("FTR"))
		p.Featured = true
		seedPart(ctx, t, repo, p)
	}
	plain := testutil.NewTestPart(t, testutil.UniqueID("PLN"))
	seedPart(ctx, t, repo, plain)

	parts, err := repo.FeaturedParts(ctx, 2)
	if err != nil {
		t.Fatalf("FeaturedParts failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Expected the limit to cap results at 2, got %d", len(parts))
	}
	for _, p := range parts {
		if !p.Featured {
			t.Errorf("Part %s should be featured", p.PartNumber)
		}
	}
}

func TestIntegrationCategoriesAndManufacturers(t *testing.T) {
	ctx, repo := newPartsTestEnv(t)

	a := testutil.NewTestPart(t, testutil.UniqueID("A"))
	a.Category = "pumps"
	a.Manufacturer = "Acme"
	seedPart(ctx, t, repo, a)

	b := testutil.NewTestPart(t, testutil.UniqueID("B"))
	b.Category = "valves"
	b.Manufacturer = "Borg"
	seedPart(ctx, t, repo, b)

	c := testutil.NewTestPart(t, testutil.UniqueID("C"))
	c.Category = "pumps"
	c.Manufacturer = "Acme"
	seedPart(ctx, t, repo, c)

	categories, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 distinct categories, got %v", categories)
	}

	manufacturers, err := repo.Manufacturers(ctx)
	if err != nil {
		t.Fatalf("Manufacturers failed: %v", err)
	}
	if len(manufacturers) != 2 {
		t.Errorf("Expected 2 distinct manufacturers, got %v", manufacturers)
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newPartsTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL, Options{})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetPartsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset parts schema: %v", err)
	}

	return ctx, repo
}
