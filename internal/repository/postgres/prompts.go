package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ignite/optimizer/internal/prompt"
)

// PromptStore implements prompt.Store against the ai_prompts table.
// Operators edit rows to tune prompts; inactive rows fall back to the
// compiled-in defaults.
type PromptStore struct{ db *sql.DB }

func NewPromptStore(db *sql.DB) *PromptStore { return &PromptStore{db: db} }

func (s *PromptStore) Get(ctx context.Context, key string) (prompt.Config, error) {
	var cfg prompt.Config
	err := s.db.QueryRowContext(ctx, `
		SELECT prompt_key, name, system_message, prompt_template, model, temperature, max_tokens
		FROM ai_prompts
		WHERE prompt_key = $1 AND is_active = TRUE
	`, key).Scan(
		&cfg.Key, &cfg.Name, &cfg.SystemMessage, &cfg.Template,
		&cfg.Model, &cfg.Temperature, &cfg.MaxTokens,
	)
	if err == sql.ErrNoRows {
		return prompt.Config{}, prompt.ErrNotFound
	}
	if err != nil {
		return prompt.Config{}, fmt.Errorf("get prompt: %w", err)
	}
	return cfg, nil
}

// Seed inserts the compiled-in default prompts. Existing rows are left
// alone unless force is set, so operator tuning survives restarts.
func (s *PromptStore) Seed(ctx context.Context, force bool) (int, error) {
	query := `
		INSERT INTO ai_prompts
			(id, prompt_key, name, system_message, prompt_template,
			 model, temperature, max_tokens, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		ON CONFLICT (prompt_key) DO NOTHING`
	if force {
		query = `
		INSERT INTO ai_prompts
			(id, prompt_key, name, system_message, prompt_template,
			 model, temperature, max_tokens, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		ON CONFLICT (prompt_key) DO UPDATE SET
			name = EXCLUDED.name,
			system_message = EXCLUDED.system_message,
			prompt_template = EXCLUDED.prompt_template,
			model = EXCLUDED.model,
			temperature = EXCLUDED.temperature,
			max_tokens = EXCLUDED.max_tokens,
			is_active = TRUE,
			updated_at = NOW()`
	}

	count := 0
	for _, cfg := range prompt.Defaults {
		res, err := s.db.ExecContext(ctx, query,
			uuid.NewString(), cfg.Key, cfg.Name, cfg.SystemMessage, cfg.Template,
			cfg.Model, cfg.Temperature, cfg.MaxTokens)
		if err != nil {
			return count, fmt.Errorf("seed prompt %s: %w", cfg.Key, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return count, fmt.Errorf("seed prompt %s: %w", cfg.Key, err)
		}
		count += int(affected)
	}
	log.Printf("[postgres] seeded %d prompts (force=%t)", count, force)
	return count, nil
}
