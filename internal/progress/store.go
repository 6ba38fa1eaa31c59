package progress

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SetKey identifies one set of one exercise on a given week and day.
// Exercise and Set are 0-based positions within the day.
type SetKey struct {
	Week     int
	Day      string
	Exercise int
	Set      int
}

func (k SetKey) String() string {
	return fmt.Sprintf("%s%d_%d", dayPrefix(k.Week, k.Day), k.Exercise, k.Set)
}

func dayPrefix(week int, day string) string {
	return fmt.Sprintf("workout_%d_%s_", week, day)
}

type storeData struct {
	CompletedSets map[string]bool `json:"completed_sets"`
}

// Store keeps completed sets in a JSON file, rewritten on every change
type Store struct {
	mu       sync.Mutex
	filePath string
	data     storeData
	logger   *log.Logger
}

// DefaultPath is progress.json in ~/.rest-timer
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".rest-timer", "progress.json")
}

// NewStore opens the store at filePath. A missing or unreadable file gives an
// empty store.
func NewStore(filePath string, logger *log.Logger) *Store {
	if logger == nil {
		panic("Store: logger cannot be nil")
	}
	s := &Store{filePath: filePath, logger: logger}
	s.load()
	return s
}

func (s *Store) IsCompleted(key SetKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CompletedSets[key.String()]
}

// MarkCompleted sets or clears the completion of a set and saves the file
func (s *Store) MarkCompleted(key SetKey, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if completed {
		s.data.CompletedSets[key.String()] = true
	} else {
		delete(s.data.CompletedSets, key.String())
	}
	return s.save()
}

// ClearDay forgets every completed set of a day
func (s *Store) ClearDay(week int, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := dayPrefix(week, day)
	for k := range s.data.CompletedSets {
		if strings.HasPrefix(k, prefix) {
			delete(s.data.CompletedSets, k)
		}
	}
	return s.save()
}

// CompletedCount is the number of completed sets recorded for a day
func (s *Store) CompletedCount(week int, day string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := dayPrefix(week, day)
	count := 0
	for k, done := range s.data.CompletedSets {
		if done && strings.HasPrefix(k, prefix) {
			count++
		}
	}
	return count
}

func (s *Store) load() {
	s.data = storeData{CompletedSets: make(map[string]bool)}
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		s.logger.Printf("ProgressStore: load %s (no existing file)", s.filePath)
		return
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.logger.Printf("ProgressStore: load %s failed to parse, starting empty: %v", s.filePath, err)
		s.data = storeData{CompletedSets: make(map[string]bool)}
		return
	}
	if s.data.CompletedSets == nil {
		s.data.CompletedSets = make(map[string]bool)
	}
	s.logger.Printf("ProgressStore: load %s -> %d completed sets", s.filePath, len(s.data.CompletedSets))
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("create progress directory: %w", err)
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	s.logger.Printf("ProgressStore: save %s -> %d completed sets", s.filePath, len(s.data.CompletedSets))
	return nil
}
