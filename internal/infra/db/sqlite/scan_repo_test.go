package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
	"github.com/bryanwahyu/securewatch/internal/infra/db/sqlite"
)

func newRepo(t *testing.T) *sqlite.ScanRepository {
	t.Helper()
	db, err := sqlite.Connect(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlite.NewScanRepository(db)
}

func fixture(id, user string, typ risk.ScanType, level risk.Level, at time.Time) *domain.Scan {
	return &domain.Scan{
		ID:        domain.ScanID(id),
		UserID:    user,
		Type:      typ,
		Input:     "https://example.com",
		RiskScore: 10,
		RiskLevel: level,
		Verdict:   risk.VerdictFor(typ, level),
		Details:   []string{"Suspicious keyword detected: login"},
		CreatedAt: at,
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	s := fixture("aaaaaaaa-1111-2222-3333-444444444444-phishing", "alice", risk.TypePhishing, risk.LevelSafe, now)
	s.EvidenceURL = "http://minio.local/evidence/a.png"
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "alice", s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != s.ID || got.UserID != "alice" || got.Type != risk.TypePhishing ||
		got.RiskScore != 10 || got.EvidenceURL != s.EvidenceURL {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Details, s.Details) {
		t.Fatalf("details = %v, want %v", got.Details, s.Details)
	}
}

func TestGetMissingReturnsNoRows(t *testing.T) {
	repo := newRepo(t)
	if _, err := repo.Get(context.Background(), "alice", "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestGetEnforcesUserPartition(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	s := fixture("aaaaaaaa-1111-2222-3333-444444444444-phishing", "alice", risk.TypePhishing, risk.LevelSafe, time.Now().UTC())
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.Get(ctx, "bob", s.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("cross-user get err = %v, want sql.ErrNoRows", err)
	}
}

func seedHistory(t *testing.T, repo *sqlite.ScanRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	seeds := []*domain.Scan{
		fixture("aaaaaaaa-1111-2222-3333-444444444401-phishing", "alice", risk.TypePhishing, risk.LevelSafe, base),
		fixture("aaaaaaaa-1111-2222-3333-444444444402-phishing", "alice", risk.TypePhishing, risk.LevelDanger, base.Add(1*time.Minute)),
		fixture("aaaaaaaa-1111-2222-3333-444444444403-deepfake", "alice", risk.TypeDeepfake, risk.LevelSuspicious, base.Add(2*time.Minute)),
		fixture("aaaaaaaa-1111-2222-3333-444444444404-deepfake", "alice", risk.TypeDeepfake, risk.LevelSafe, base.Add(3*time.Minute)),
		fixture("aaaaaaaa-1111-2222-3333-444444444405-phishing", "bob", risk.TypePhishing, risk.LevelDanger, base.Add(4*time.Minute)),
	}
	for _, s := range seeds {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("seed %s: %v", s.ID, err)
		}
	}
}

func ids(list []*domain.Scan) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s.ID)
	}
	return out
}

func TestLatestOrdersNewestFirst(t *testing.T) {
	repo := newRepo(t)
	seedHistory(t, repo)

	list, err := repo.Latest(context.Background(), "alice", 2)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	want := []string{
		"aaaaaaaa-1111-2222-3333-444444444404-deepfake",
		"aaaaaaaa-1111-2222-3333-444444444403-deepfake",
	}
	if !reflect.DeepEqual(ids(list), want) {
		t.Fatalf("latest = %v, want %v", ids(list), want)
	}
}

func TestAllScopedToUser(t *testing.T) {
	repo := newRepo(t)
	seedHistory(t, repo)

	list, err := repo.All(context.Background(), "alice")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	for _, s := range list {
		if s.UserID != "alice" {
			t.Fatalf("foreign record leaked: %+v", s)
		}
	}
}

func TestPaginateWithFilters(t *testing.T) {
	repo := newRepo(t)
	seedHistory(t, repo)
	ctx := context.Background()

	res, err := repo.Paginate(ctx, "alice", 1, 2, nil)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if res.Total != 4 || res.TotalPages != 2 || len(res.Data) != 2 {
		t.Fatalf("page 1 = total %d pages %d rows %d", res.Total, res.TotalPages, len(res.Data))
	}

	res, err = repo.Paginate(ctx, "alice", 2, 2, nil)
	if err != nil {
		t.Fatalf("paginate page 2: %v", err)
	}
	want := []string{
		"aaaaaaaa-1111-2222-3333-444444444402-phishing",
		"aaaaaaaa-1111-2222-3333-444444444401-phishing",
	}
	if !reflect.DeepEqual(ids(res.Data), want) {
		t.Fatalf("page 2 = %v, want %v", ids(res.Data), want)
	}

	res, err = repo.Paginate(ctx, "alice", 1, 20, map[string]interface{}{"type": "deepfake", "level": "suspicious"})
	if err != nil {
		t.Fatalf("paginate filtered: %v", err)
	}
	if res.Total != 1 || len(res.Data) != 1 ||
		res.Data[0].ID != "aaaaaaaa-1111-2222-3333-444444444403-deepfake" {
		t.Fatalf("filtered = %v (total %d)", ids(res.Data), res.Total)
	}
}

func TestCount(t *testing.T) {
	repo := newRepo(t)
	seedHistory(t, repo)

	n, err := repo.Count(context.Background(), "alice", map[string]interface{}{"type": "phishing"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func TestDeleteAndDeleteAll(t *testing.T) {
	repo := newRepo(t)
	seedHistory(t, repo)
	ctx := context.Background()

	if err := repo.Delete(ctx, "alice", "aaaaaaaa-1111-2222-3333-444444444401-phishing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := repo.Count(ctx, "alice", nil); n != 3 {
		t.Fatalf("count after delete = %d, want 3", n)
	}

	if err := repo.DeleteAll(ctx, "alice"); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n, _ := repo.Count(ctx, "alice", nil); n != 0 {
		t.Fatalf("count after clear = %d, want 0", n)
	}
	// Other partitions untouched.
	if n, _ := repo.Count(ctx, "bob", nil); n != 1 {
		t.Fatalf("bob count = %d, want 1", n)
	}
}
