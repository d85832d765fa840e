package repos

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/novibenocode/novibe-backend/internal/logger"
)

// newTestDB opens an in-memory sqlite database and creates the tables the
// repos touch. The production schema comes from AutoMigrate against
// Postgres; sqlite cannot evaluate the uuid/now column defaults, so the
// test schema declares the same columns without them and the tests set ids
// and timestamps client-side.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS "user" (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS user_token (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			access_token TEXT NOT NULL UNIQUE,
			refresh_token TEXT NOT NULL UNIQUE,
			expires_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS idea (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			idea_text TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'manual',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS document (
			id TEXT PRIMARY KEY,
			idea_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			document_type TEXT NOT NULL,
			content TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS credit_account (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			credits INTEGER NOT NULL DEFAULT 0,
			tier TEXT NOT NULL DEFAULT 'free',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS credit_deduction (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			operation_id TEXT NOT NULL UNIQUE,
			created_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS ai_call_log (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			call_type TEXT NOT NULL,
			model TEXT NOT NULL,
			prompt TEXT,
			response TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			created_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	t.Cleanup(func() {
		for _, table := range []string{"credit_deduction", "credit_account", "ai_call_log", "document", "idea", "user_token", `"user"`} {
			db.Exec("DELETE FROM " + table)
		}
	})
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}
