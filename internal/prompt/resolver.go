// Package prompt stores and renders the per-channel generation prompts.
// Prompts live in the database so operators can tune wording, model, and
// sampling without a deploy; compiled-in defaults cover every channel so a
// fresh install works before anything is seeded.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/osteele/liquid"
)

// ErrNotFound is returned by a Store when no active prompt exists for a key.
var ErrNotFound = errors.New("prompt not found")

// Config is one prompt row: the template pair plus the model parameters the
// generation call should use with it.
type Config struct {
	Key           string
	Name          string
	SystemMessage string
	Template      string
	Model         string
	Temperature   float64
	MaxTokens     int
}

// Store loads prompt configurations by key.
type Store interface {
	Get(ctx context.Context, key string) (Config, error)
}

// Resolver resolves a prompt key to a Config, preferring the store and
// falling back to the compiled-in defaults, then renders the template with
// Liquid. Parsed templates are cached by template text.
type Resolver struct {
	store  Store
	engine *liquid.Engine
	cache  sync.Map // template text -> *liquid.Template
}

func NewResolver(store Store) *Resolver {
	engine := liquid.NewEngine()

	// Missing bindings render as empty; this fills them with a readable
	// placeholder instead: {{ website | default: "Not set" }}
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" || s == "0" {
			return defaultVal
		}
		return value
	})

	return &Resolver{store: store, engine: engine}
}

// Resolve returns the prompt configuration for key. A store miss falls back
// to the compiled-in default; any other store error is surfaced.
func (r *Resolver) Resolve(ctx context.Context, key string) (Config, error) {
	if r.store != nil {
		cfg, err := r.store.Get(ctx, key)
		switch {
		case err == nil:
			return cfg, nil
		case errors.Is(err, ErrNotFound):
			log.Printf("[prompt] no stored prompt for %s, using default", key)
		default:
			return Config{}, fmt.Errorf("load prompt %s: %w", key, err)
		}
	}

	cfg, ok := Defaults[key]
	if !ok {
		return Config{}, fmt.Errorf("prompt %s: %w", key, ErrNotFound)
	}
	return cfg, nil
}

// Render fills cfg's template with the given bindings.
func (r *Resolver) Render(cfg Config, bindings map[string]any) (string, error) {
	tmpl, err := r.parse(cfg.Template)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", cfg.Key, err)
	}
	out, err := tmpl.Render(bindings)
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", cfg.Key, err)
	}
	return string(out), nil
}

func (r *Resolver) parse(text string) (*liquid.Template, error) {
	if cached, ok := r.cache.Load(text); ok {
		return cached.(*liquid.Template), nil
	}
	tmpl, err := r.engine.ParseString(text)
	if err != nil {
		return nil, err
	}
	r.cache.Store(text, tmpl)
	return tmpl, nil
}
