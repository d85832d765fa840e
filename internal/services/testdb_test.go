package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/types"
)

// newTestDB opens an in-memory sqlite database with the subset of the
// schema the service tests touch. Ids and timestamps are set client-side
// because sqlite cannot evaluate the Postgres column defaults.
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

func seedAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, credits int, tier string) {
	t.Helper()
	account := &types.CreditAccount{
		ID:      uuid.New(),
		UserID:  userID,
		Credits: credits,
		Tier:    tier,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("seed credit account: %v", err)
	}
}

// scriptedAIClient returns a fixed reply or error and counts text calls.
type scriptedAIClient struct {
	reply     string
	err       error
	textCalls int
}

func (c *scriptedAIClient) Model() string { return "scripted" }

func (c *scriptedAIClient) GenerateText(_ context.Context, _ string) (string, error) {
	c.textCalls++
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *scriptedAIClient) GenerateSpeech(_ context.Context, _ string, _ string) ([]byte, string, error) {
	if c.err != nil {
		return nil, "", c.err
	}
	return []byte("RIFF scripted audio"), "audio/wav", nil
}
