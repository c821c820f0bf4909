package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// ApplyMigrations runs every *.sql file under dir in fsys that is not yet
// recorded in schema_migrations, in lexical order, one transaction per file.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS, dir string) ([]string, error) {
	createMetaTableSQL := `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if err := db.WithContext(ctx).Exec(createMetaTableSQL).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var applied []string
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		var count int64
		if err := db.WithContext(ctx).Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, version, time.Now()).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		hlog.CtxInfof(ctx, "applied migration %s", version)
		applied = append(applied, version)
	}
	return applied, nil
}
