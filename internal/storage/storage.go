package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string    `json:"username"`
	SoundEnabled bool      `json:"sound_enabled"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// GameStats stores lifetime statistics
type GameStats struct {
	GamesFinished int            `json:"games_finished"`
	Checkmates    int            `json:"checkmates"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	MovesPlayed   int            `json:"moves_played"`
	AbilitiesCast map[string]int `json:"abilities_cast"`
	ManaSpent     int            `json:"mana_spent"`
}

// NewGameStats returns empty statistics
func NewGameStats() *GameStats {
	return &GameStats{
		AbilitiesCast: make(map[string]int),
	}
}

// TotalAbilities returns the number of abilities cast across all kinds.
func (s *GameStats) TotalAbilities() int {
	n := 0
	for _, c := range s.AbilitiesCast {
		n += c
	}
	return n
}

// DrawRate returns the share of finished games that were drawn (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesFinished == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesFinished) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database under dataDir. An empty dataDir
// selects the XDG data directory.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil // Disable logging

	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.get(keyStats, stats)
	if stats.AbilitiesCast == nil {
		stats.AbilitiesCast = make(map[string]int)
	}
	return stats, err
}

// UpdateStats applies fn to the stored statistics and saves the result.
func (s *Storage) UpdateStats(fn func(*GameStats)) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	fn(stats)
	return s.SaveStats(stats)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
