// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides DB-backed tests for the data stores. Tests are
// skipped when PostgreSQL is unavailable.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"brandforge/internal/database"
	"brandforge/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandforge")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() {
		db.Exec("TRUNCATE scrape_logs, assets, versions, projects CASCADE")
		db.Close()
	})
	return db
}

func createTestProject(t *testing.T, projects *ProjectStore) *models.Project {
	t.Helper()
	brand := "Acme"
	p, err := projects.Create(context.Background(), &models.Project{
		Name:      "Test Project",
		SourceURL: "https://example.com",
		Brand:     &brand,
		Status:    models.ProjectStatusNew,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestProjectStoreRoundtrip(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	ctx := context.Background()

	p := createTestProject(t, projects)

	loaded, err := projects.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded == nil {
		t.Fatal("project not found")
	}
	if loaded.Name != "Test Project" || loaded.SourceURL != "https://example.com" {
		t.Errorf("loaded: got %+v", loaded)
	}
	if loaded.Brand == nil || *loaded.Brand != "Acme" {
		t.Errorf("brand: got %v", loaded.Brand)
	}
	if loaded.Style != nil {
		t.Error("new project should have no style")
	}

	// Status update.
	if err := projects.UpdateStatus(ctx, p.ID, models.ProjectStatusScraped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	loaded, _ = projects.FindByID(ctx, p.ID)
	if loaded.Status != models.ProjectStatusScraped {
		t.Errorf("status: got %q", loaded.Status)
	}

	// Style JSONB roundtrip.
	style := &models.SiteStyle{
		Fonts:   []string{"Roboto"},
		Palette: []models.RGB{{1, 2, 3}},
		Logo:    "https://example.com/logo.png",
	}
	if err := projects.UpdateStyle(ctx, p.ID, style); err != nil {
		t.Fatalf("update style: %v", err)
	}
	loaded, _ = projects.FindByID(ctx, p.ID)
	if loaded.Style == nil {
		t.Fatal("style not stored")
	}
	if loaded.Style.Logo != style.Logo || len(loaded.Style.Fonts) != 1 || loaded.Style.Palette[0] != (models.RGB{1, 2, 3}) {
		t.Errorf("style: got %+v", loaded.Style)
	}
}

func TestProjectStoreFindMissing(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)

	p, err := projects.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p != nil {
		t.Errorf("got %+v, want nil for missing project", p)
	}
}

func TestVersionChain(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	versions := NewVersionStore(db)
	ctx := context.Background()

	p := createTestProject(t, projects)

	// Appends number sequentially and keep exactly one current version.
	var last *models.Version
	for i := 1; i <= 3; i++ {
		v, err := versions.Create(ctx, &models.Version{
			ProjectID: p.ID,
			HTML:      "<html>v</html>",
		})
		if err != nil {
			t.Fatalf("create version %d: %v", i, err)
		}
		if v.Number != i {
			t.Errorf("number: got %d, want %d", v.Number, i)
		}
		if !v.IsCurrent {
			t.Errorf("version %d not current after insert", i)
		}
		last = v
	}

	current, err := versions.Current(ctx, p.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.ID != last.ID {
		t.Errorf("current: got %+v, want the last insert", current)
	}

	var currentCount int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM versions WHERE project_id = $1 AND is_current", p.ID,
	).Scan(&currentCount); err != nil {
		t.Fatalf("count: %v", err)
	}
	if currentCount != 1 {
		t.Errorf("current versions: got %d, want exactly 1", currentCount)
	}

	list, err := versions.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list: got %d, want 3", len(list))
	}
	// Newest first.
	if list[0].Number != 3 || list[2].Number != 1 {
		t.Errorf("order: got %d, %d, %d", list[0].Number, list[1].Number, list[2].Number)
	}
}

func TestVersionCurrentMissing(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	versions := NewVersionStore(db)

	p := createTestProject(t, projects)

	current, err := versions.Current(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current != nil {
		t.Errorf("got %+v, want nil without versions", current)
	}
}

func TestAssetStore(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	assets := NewAssetStore(db)
	ctx := context.Background()

	p := createTestProject(t, projects)

	key := "abc/1-screenshot.jpg"
	if err := assets.Insert(ctx, &models.Asset{
		ProjectID:  p.ID,
		Type:       models.AssetTypeScreenshot,
		URL:        "https://assets.test/abc/1-screenshot.jpg",
		StorageKey: &key,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := assets.Insert(ctx, &models.Asset{
		ProjectID: p.ID,
		Type:      models.AssetTypeImage,
		URL:       "https://example.com/hero.jpg",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	list, err := assets.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list: got %d, want 2", len(list))
	}
}

func TestScrapeLogStore(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	logs := NewScrapeLogStore(db)
	ctx := context.Background()

	p := createTestProject(t, projects)

	entry := &models.ScrapeLog{
		ProjectID: p.ID,
		URL:       "https://example.com",
		Success:   true,
		AssetsFound: models.AssetsFound{
			Colors: 6, Fonts: 2, Images: 3, Logo: true, Screenshot: true,
		},
		DurationMS: 1234,
		Retries:    1,
	}
	if err := logs.Insert(ctx, entry); err != nil {
		t.Fatalf("insert: %v", err)
	}

	failed := &models.ScrapeLog{
		ProjectID: p.ID,
		URL:       "https://example.com",
		Success:   false,
		Errors:    []string{"scrape retries exhausted: network"},
	}
	if err := logs.Insert(ctx, failed); err != nil {
		t.Fatalf("insert failure entry: %v", err)
	}

	list, err := logs.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list: got %d, want 2", len(list))
	}

	// JSONB roundtrip of the found-asset summary and error list.
	var ok *models.ScrapeLog
	for i := range list {
		if list[i].Success {
			ok = &list[i]
		}
	}
	if ok == nil {
		t.Fatal("success entry missing")
	}
	if ok.AssetsFound.Colors != 6 || !ok.AssetsFound.Logo {
		t.Errorf("assets found: got %+v", ok.AssetsFound)
	}
}
