package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/marisolfit/coachdesk/migrations"
	"gorm.io/gorm"
)

// Schema changes ship as numbered SQL files embedded in the binary. Each
// file runs once, inside a transaction, and is recorded in
// schema_migrations under its numeric prefix. Forward-only, no down files.
var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type migrationScript struct {
	Version  string
	Sequence int
	Name     string
	SQL      string
}

func runMigrations(database *gorm.DB) error {
	if err := ensureMigrationLedger(database); err != nil {
		return err
	}

	scripts, err := readMigrationScripts()
	if err != nil {
		return err
	}

	applied, err := appliedMigrations(database)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, done := applied[script.Version]; done {
			continue
		}
		if err := runMigrationScript(database, script); err != nil {
			return err
		}
	}
	return nil
}

func ensureMigrationLedger(database *gorm.DB) error {
	const ledgerSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func readMigrationScripts() ([]migrationScript, error) {
	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(entries))
	versionFiles := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := strings.TrimSpace(entry.Name())
		matches := migrationNamePattern.FindStringSubmatch(fileName)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		sequence, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", fileName, err)
		}

		if other, taken := versionFiles[version]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, other, fileName)
		}
		versionFiles[version] = fileName

		rawSQL, err := fs.ReadFile(migrations.Files, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}

		scripts = append(scripts, migrationScript{
			Version:  version,
			Sequence: sequence,
			Name:     fileName,
			SQL:      string(rawSQL),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		if scripts[i].Sequence == scripts[j].Sequence {
			return scripts[i].Name < scripts[j].Name
		}
		return scripts[i].Sequence < scripts[j].Sequence
	})
	return scripts, nil
}

type appliedMigrationRow struct {
	Version string `gorm:"column:version"`
}

func appliedMigrations(database *gorm.DB) (map[string]struct{}, error) {
	rows := make([]appliedMigrationRow, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	versions := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

// runMigrationScript executes one script statement by statement in a single
// transaction and records it in the ledger. ADD COLUMN statements whose
// column already exists are skipped, so a migration interrupted before its
// ledger row was written can run again.
func runMigrationScript(database *gorm.DB, script migrationScript) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(script.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", script.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", script.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			script.Version,
			script.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.Name, err)
		}
		return nil
	})
}

func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		statement := strings.TrimSpace(part)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}
	return statements
}

func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}

	tableName := trimIdentifier(matches[1])
	columnName := trimIdentifier(matches[2])
	return tableHasColumn(database, tableName, columnName)
}

type tableInfoRow struct {
	Name string `gorm:"column:name"`
}

func tableHasColumn(database *gorm.DB, tableName string, columnName string) (bool, error) {
	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)

	columns := make([]tableInfoRow, 0)
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func trimIdentifier(identifier string) string {
	trimmed := strings.TrimSpace(identifier)
	trimmed = strings.Trim(trimmed, "\"`[]")
	return strings.TrimSpace(trimmed)
}
