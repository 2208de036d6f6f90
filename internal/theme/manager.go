package theme

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrUnknownTheme = errors.New("unknown theme")

const tokenCacheSize = 16

// Manager owns the theme selection. The active TokenSet is rebuilt only on
// Select or Reload; readers get the same immutable set until then.
type Manager struct {
	mu     sync.RWMutex
	path   string
	pack   *Pack
	active ThemeDef
	tokens *TokenSet
	cache  *lru.Cache[string, *TokenSet]
	log    logger
}

// NewManager loads the pack at path through the fallback chain and selects
// themeID, or the first theme when themeID is empty or unknown.
func NewManager(path, themeID string, log logger) *Manager {
	if log == nil {
		log = noopLogger{}
	}
	cache, err := lru.New[string, *TokenSet](tokenCacheSize)
	if err != nil {
		panic(fmt.Sprintf("theme: token cache: %v", err))
	}
	m := &Manager{path: path, cache: cache, log: log}
	m.install(LoadPack(path, log), themeID)
	return m
}

// install must be called with mu held for writing, or before m is shared.
func (m *Manager) install(pack *Pack, themeID string) {
	m.pack = pack
	def, ok := pack.Theme(themeID)
	if !ok {
		if themeID != "" {
			m.log.Errorf("theme", "theme %q not in pack %s, using %q", themeID, pack.Source, pack.Themes[0].ID)
		}
		def = pack.Themes[0]
	}
	m.active = def
	m.tokens = m.derive(def)
}

func (m *Manager) derive(def ThemeDef) *TokenSet {
	if ts, ok := m.cache.Get(def.ID); ok {
		return ts
	}
	ts := DeriveTheme(def, m.pack.Defaults)
	m.cache.Add(def.ID, ts)
	m.log.Infof("theme", "derived %d tokens for %q", ts.Len(), def.ID)
	return ts
}

// Tokens returns the active token set.
func (m *Manager) Tokens() *TokenSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens
}

// Active returns the selected theme.
func (m *Manager) Active() ThemeDef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Themes lists the themes of the loaded pack.
func (m *Manager) Themes() []ThemeDef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ThemeDef(nil), m.pack.Themes...)
}

// Source reports where the loaded pack came from.
func (m *Manager) Source() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pack.Source
}

// Select switches the active theme.
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	def, ok := m.pack.Theme(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	m.active = def
	m.tokens = m.derive(def)
	m.log.Infof("theme", "selected %q", id)
	return nil
}

// Reload re-reads the pack file and re-derives the active theme. A theme
// that disappeared from the pack falls back to the first one.
func (m *Manager) Reload() {
	pack := LoadPack(m.path, m.log)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Purge()
	m.install(pack, m.active.ID)
}
