package boardsync

import (
	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
)

// Listener receives controller events. Callbacks run synchronously on the
// goroutine driving the controller.
type Listener interface {
	OnSelect(sq board.Square)
	OnMove(rec rules.MoveRecord)
	OnIllegalMove(from, to board.Square, err error)
	OnAbility(out AbilityOutcome)
	OnAbilityRejected(a mana.Ability, err error)
	OnGameOver(over GameOver)
	OnReset()
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnSelect(board.Square) {}
func (NopListener) OnMove(rules.MoveRecord) {}
func (NopListener) OnIllegalMove(board.Square, board.Square, error) {}
func (NopListener) OnAbility(AbilityOutcome) {}
func (NopListener) OnAbilityRejected(mana.Ability, error) {}
func (NopListener) OnGameOver(GameOver) {}
func (NopListener) OnReset() {}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnSelect(sq board.Square) {
	for _, l := range ls {
		l.OnSelect(sq)
	}
}

func (ls Listeners) OnMove(rec rules.MoveRecord) {
	for _, l := range ls {
		l.OnMove(rec)
	}
}

func (ls Listeners) OnIllegalMove(from, to board.Square, err error) {
	for _, l := range ls {
		l.OnIllegalMove(from, to, err)
	}
}

func (ls Listeners) OnAbility(out AbilityOutcome) {
	for _, l := range ls {
		l.OnAbility(out)
	}
}

func (ls Listeners) OnAbilityRejected(a mana.Ability, err error) {
	for _, l := range ls {
		l.OnAbilityRejected(a, err)
	}
}

func (ls Listeners) OnGameOver(over GameOver) {
	for _, l := range ls {
		l.OnGameOver(over)
	}
}

func (ls Listeners) OnReset() {
	for _, l := range ls {
		l.OnReset()
	}
}
