package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ignite/optimizer/internal/prompt"
)

func TestPromptStoreGet(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT(.+)FROM ai_prompts`).
		WithArgs("paid_search_main").
		WillReturnRows(sqlmock.NewRows([]string{
			"prompt_key", "name", "system_message", "prompt_template", "model", "temperature", "max_tokens",
		}).AddRow("paid_search_main", "Paid Search", "system", "template", "gpt-4o", 0.2, 3000))

	store := NewPromptStore(db)
	cfg, err := store.Get(context.Background(), "paid_search_main")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Model != "gpt-4o" || cfg.Temperature != 0.2 || cfg.MaxTokens != 3000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestPromptStoreGetMiss(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT(.+)FROM ai_prompts`).
		WillReturnRows(sqlmock.NewRows([]string{"prompt_key"}))

	store := NewPromptStore(db)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, prompt.ErrNotFound) {
		t.Errorf("err = %v, want prompt.ErrNotFound", err)
	}
}

func TestPromptStoreSeedInsertsAllDefaults(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	for range prompt.Defaults {
		mock.ExpectExec(`INSERT INTO ai_prompts`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	store := NewPromptStore(db)
	count, err := store.Seed(context.Background(), false)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if count != len(prompt.Defaults) {
		t.Errorf("seeded %d prompts, want %d", count, len(prompt.Defaults))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
