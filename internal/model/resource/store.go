package resource

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackLocale is served when a requested locale has no notice.
const FallbackLocale = "intl"

// Store exposes crisis notices for HTTP handlers and the orchestrator's callers.
type Store interface {
	List() []Notice
	FindByLocale(locale string) (Notice, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Notice
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied notices.
func NewMemoryStore(items []Notice) *MemoryStore {
	return &MemoryStore{items: append([]Notice(nil), items...)}
}

// List returns every configured notice.
func (s *MemoryStore) List() []Notice {
	return append([]Notice(nil), s.items...)
}

// FindByLocale looks up a notice by locale, case-insensitively.
func (s *MemoryStore) FindByLocale(locale string) (Notice, bool) {
	for _, item := range s.items {
		if strings.EqualFold(item.Locale, strings.TrimSpace(locale)) {
			return item, true
		}
	}
	return Notice{}, false
}

// Resolve returns the notice for locale, then the fallback locale, then the
// first configured notice. ok is false only for an empty store.
func Resolve(store Store, locale string) (Notice, bool) {
	if notice, ok := store.FindByLocale(locale); ok {
		return notice, true
	}
	if notice, ok := store.FindByLocale(FallbackLocale); ok {
		return notice, true
	}
	items := store.List()
	if len(items) == 0 {
		return Notice{}, false
	}
	return items[0], true
}

type fileFormat struct {
	Notices []Notice `yaml:"notices"`
}

// Load 从 YAML 文件读取危机资源，文件中的条目会覆盖同一 locale 的内置条目。
func Load(path string, base []Notice) ([]Notice, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crisis resources: %w", err)
	}

	var doc fileFormat
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse crisis resources %s: %w", path, err)
	}

	merged := append([]Notice(nil), base...)
	for _, notice := range doc.Notices {
		if err := notice.Validate(); err != nil {
			return nil, err
		}
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Locale, notice.Locale) {
				merged[i] = notice
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, notice)
		}
	}

	return merged, nil
}

// Open 返回内置资源的 MemoryStore；path 非空时先合并 YAML 文件中的条目。
func Open(path string) (*MemoryStore, error) {
	notices := Seed()
	if strings.TrimSpace(path) != "" {
		loaded, err := Load(path, notices)
		if err != nil {
			return nil, err
		}
		notices = loaded
	}
	return NewMemoryStore(notices), nil
}
