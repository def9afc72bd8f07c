package storage

import (
	"log"

	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/rules"
)

// Recorder updates the lifetime statistics from controller events.
// Write failures are logged and otherwise ignored.
type Recorder struct {
	boardsync.NopListener
	store *Storage
}

// NewRecorder returns a listener that records into s.
func NewRecorder(s *Storage) *Recorder {
	return &Recorder{store: s}
}

func (r *Recorder) OnMove(rules.MoveRecord) {
	r.update(func(st *GameStats) { st.MovesPlayed++ })
}

func (r *Recorder) OnAbility(out boardsync.AbilityOutcome) {
	r.update(func(st *GameStats) {
		st.ManaSpent += out.Cost
		if out.Applied {
			st.AbilitiesCast[out.Ability.Name()]++
		}
	})
}

func (r *Recorder) OnGameOver(over boardsync.GameOver) {
	r.update(func(st *GameStats) {
		st.GamesFinished++
		if over.Result != rules.Checkmate {
			st.Draws++
			return
		}
		st.Checkmates++
		if over.Winner == board.White {
			st.WhiteWins++
		} else {
			st.BlackWins++
		}
	})
}

func (r *Recorder) update(fn func(*GameStats)) {
	if r.store == nil {
		return
	}
	if err := r.store.UpdateStats(fn); err != nil {
		log.Printf("Warning: Failed to save stats: %v", err)
	}
}
