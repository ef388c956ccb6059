package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Guerrilla-Interactive/totonoe/app/history"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/Guerrilla-Interactive/totonoe/app/session"
	"go.uber.org/zap"
)

// Persistence is the typed boundary between the questionnaire and a Store.
// Load methods always return a usable value and save methods never fail:
// the first storage error switches the process to an in-memory store.
type Persistence struct {
	store    Store
	log      *zap.Logger
	degraded bool
}

// NewPersistence wraps s. A nil s starts out degraded.
func NewPersistence(s Store, log *zap.Logger) *Persistence {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Persistence{store: s, log: log}
	if s == nil {
		p.store = NewMemoryStore()
		p.degraded = true
	}
	return p
}

// Degraded reports whether writes are only being kept in memory.
func (p *Persistence) Degraded() bool { return p.degraded }

// Close closes the underlying store.
func (p *Persistence) Close() error { return p.store.Close() }

func (p *Persistence) degrade(op string, err error) {
	p.log.Warn("storage failed, continuing in memory only",
		zap.String("op", op), zap.Error(err))
	if p.degraded {
		return
	}
	_ = p.store.Close()
	p.store = NewMemoryStore()
	p.degraded = true
}

func (p *Persistence) load(ctx context.Context, key string, v any) bool {
	raw, err := p.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		p.degrade("get "+key, err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		p.log.Warn("ignoring unreadable stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (p *Persistence) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.log.Error("marshal stored value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.store.Put(ctx, key, data); err != nil {
		p.degrade("put "+key, err)
		_ = p.store.Put(ctx, key, data)
	}
}

// saveAll writes values as one unit. After a failure the values go to the
// in-memory replacement, while the durable store keeps its previous set.
func (p *Persistence) saveAll(ctx context.Context, values map[string]any) {
	raw := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			p.log.Error("marshal stored value", zap.String("key", key), zap.Error(err))
			return
		}
		raw[key] = data
	}
	if err := p.store.PutAll(ctx, raw); err != nil {
		p.degrade("put configuration", err)
		_ = p.store.PutAll(ctx, raw)
	}
}

// LoadConfiguration reads the stored questions, UI options and behavior
// flags. Each part falls back to its default independently and UI/behavior
// fields are merged over the defaults one by one.
func (p *Persistence) LoadConfiguration(ctx context.Context) lab.Configuration {
	cfg := lab.Defaults()

	var questions []string
	if p.load(ctx, KeyQuestions, &questions) {
		if cleaned := lab.CleanQuestions(questions); cleaned != nil {
			cfg.Questions = cleaned
		}
	}
	var ui map[string]any
	if p.load(ctx, KeyUIOptions, &ui) {
		cfg.UI = lab.MergeUI(ui, cfg.UI)
	}
	var behavior map[string]any
	if p.load(ctx, KeyBehavior, &behavior) {
		cfg.Behavior = lab.MergeBehavior(behavior, cfg.Behavior)
	}
	return cfg
}

// SaveConfiguration writes the three configuration keys together, so a
// reload never sees questions from one configuration and options from another.
func (p *Persistence) SaveConfiguration(ctx context.Context, cfg lab.Configuration) {
	p.saveAll(ctx, map[string]any{
		KeyQuestions: cfg.Questions,
		KeyUIOptions: cfg.UI,
		KeyBehavior:  cfg.Behavior,
	})
}

// LoadMode returns the stored mode, GuidedFlow when absent or unknown.
func (p *Persistence) LoadMode(ctx context.Context) session.Mode {
	var s string
	if !p.load(ctx, KeyMode, &s) {
		return session.GuidedFlow
	}
	mode, _ := session.ParseMode(s)
	return mode
}

func (p *Persistence) SaveMode(ctx context.Context, mode session.Mode) {
	p.save(ctx, KeyMode, string(mode))
}

// LoadHistory returns the stored entries, newest first.
func (p *Persistence) LoadHistory(ctx context.Context) []history.Entry {
	var entries []history.Entry
	if !p.load(ctx, KeyHistory, &entries) {
		return nil
	}
	return entries
}

func (p *Persistence) SaveHistory(ctx context.Context, entries []history.Entry) {
	if entries == nil {
		entries = []history.Entry{}
	}
	p.save(ctx, KeyHistory, entries)
}

// ClearHistory removes the stored history key.
func (p *Persistence) ClearHistory(ctx context.Context) {
	if err := p.store.Delete(ctx, KeyHistory); err != nil {
		p.degrade("delete "+KeyHistory, err)
		_ = p.store.Delete(ctx, KeyHistory)
	}
}
