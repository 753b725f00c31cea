// Package testutil provides helpers shared by integration tests:
// environment gating, schema resets, and test data factories.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/partsdesk/partsdesk/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// resetSchema drops and recreates one table's schema from its migration pair.
func resetSchema(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", name+".down.sql")
	upPath := filepath.Join(root, "migrations", name+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read %s down migration: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply %s down migration: %w", name, err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read %s up migration: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply %s up migration: %w", name, err)
	}

	return nil
}

// ResetSubmissionSchemas drops and recreates users plus the three
// submission tables in dependency order.
func ResetSubmissionSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	// Children first so the users drop does not hit FK references.
	for _, name := range []string{
		"000004_contact_requests",
		"000003_suggestions",
		"000002_quotes",
		"000001_users",
	} {
		root, err := ProjectRoot()
		if err != nil {
			return err
		}
		downSQL, err := os.ReadFile(filepath.Join(root, "migrations", name+".down.sql"))
		if err != nil {
			return fmt.Errorf("read %s down migration: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply %s down migration: %w", name, err)
		}
	}

	for _, name := range []string{
		"000001_users",
		"000002_quotes",
		"000003_suggestions",
		"000004_contact_requests",
	} {
		root, err := ProjectRoot()
		if err != nil {
			return err
		}
		upSQL, err := os.ReadFile(filepath.Join(root, "migrations", name+".up.sql"))
		if err != nil {
			return fmt.Errorf("read %s up migration: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
			return fmt.Errorf("apply %s up migration: %w", name, err)
		}
	}

	return nil
}

// ResetPartsSchema drops and recreates the parts schema for tests.
func ResetPartsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000005_parts")
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:        ulid.Make().String(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Company:   "Acme Machining",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestQuote creates a test quote owned by userID.
func NewTestQuote(t testing.TB, userID string) *model.Quote {
	t.Helper()
	now := time.Now().UTC()
	return &model.Quote{
		ID:          ulid.Make().String(),
		ReferenceID: fmt.Sprintf("QR-%d", now.UnixNano()),
		UserID:      userID,
		PartType:    "hydraulic pump",
		PartNumber:  "HP-2201",
		Quantity:    2,
		Urgency:     "standard",
		Status:      model.QuoteStatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestSuggestion creates a test part suggestion owned by userID.
func NewTestSuggestion(t testing.TB, userID string) *model.Suggestion {
	t.Helper()
	now := time.Now().UTC()
	return &model.Suggestion{
		ID:          ulid.Make().String(),
		ReferenceID: fmt.Sprintf("PS-%d", now.UnixNano()),
		UserID:      userID,
		PartName:    "Spindle bearing kit",
		Category:    "bearings",
		Status:      model.SuggestionStatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestContactRequest creates a test support ticket owned by userID.
func NewTestContactRequest(t testing.TB, userID string) *model.ContactRequest {
	t.Helper()
	now := time.Now().UTC()
	return &model.ContactRequest{
		ID:          ulid.Make().String(),
		ReferenceID: fmt.Sprintf("CS-%d", now.UnixNano()),
		UserID:      userID,
		Subject:     "Order status",
		Message:     "Where is my order?",
		Status:      model.ContactStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestPart creates a test catalog part with sensible defaults.
func NewTestPart(t testing.TB, partNumber string) *model.Part {
	t.Helper()
	now := time.Now().UTC()
	return &model.Part{
		ID:            ulid.Make().String(),
		PartNumber:    partNumber,
		Name:          "Part " + partNumber,
		Category:      "pumps",
		Manufacturer:  "Acme",
		Price:         129.99,
		StockQuantity: 5,
		Compatibility: []string{"Model A", "Model B"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
