package ui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
)

// FeedbackManager turns controller events into notices, board effects and sounds.
type FeedbackManager struct {
	boardsync.NopListener

	notices *Notices
	effects *BoardEffects
	audio   *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(soundEnabled bool) *FeedbackManager {
	fm := &FeedbackManager{
		notices: NewNotices(),
		effects: NewBoardEffects(),
		audio:   NewAudioManager(),
	}
	fm.audio.SetEnabled(soundEnabled)
	return fm
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.notices.Update()
	fm.effects.Update()
}

// Effects returns the board effects for the renderer.
func (fm *FeedbackManager) Effects() *BoardEffects {
	return fm.effects
}

// Notices returns the notice stack.
func (fm *FeedbackManager) Notices() *Notices {
	return fm.notices
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// OnSelect plays a soft click.
func (fm *FeedbackManager) OnSelect(board.Square) {
	fm.audio.Play(SoundSelect)
}

// OnMove handles a successful move.
func (fm *FeedbackManager) OnMove(rec rules.MoveRecord) {
	switch {
	case rec.Castle:
		fm.audio.Play(SoundCastle)
	case rec.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
	if rec.Check {
		fm.notices.Show("Check!", NoticeWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	}
}

// OnIllegalMove handles a rejected move attempt.
func (fm *FeedbackManager) OnIllegalMove(from, to board.Square, err error) {
	message := "Invalid move"
	switch {
	case errors.Is(err, rules.ErrWrongTurn):
		message = "Not your turn"
	case errors.Is(err, rules.ErrNoPiece):
		message = "No piece to move"
	}
	if from == to {
		message = "Move cancelled"
	}

	fm.notices.Show(message, NoticeWarning, 2*time.Second)
	fm.effects.Shake(from)
	if from != to {
		fm.effects.Flash(to, color.RGBA{255, 80, 80, 150}, 400*time.Millisecond)
	}
	fm.audio.Play(SoundInvalid)
}

// OnAbility handles a paid ability cast.
func (fm *FeedbackManager) OnAbility(out boardsync.AbilityOutcome) {
	if !out.Applied {
		fm.notices.Show(fmt.Sprintf("%s fizzled on %s (-%d mana)", out.Ability, out.Target, out.Cost), NoticeWarning, 2*time.Second)
		fm.audio.Play(SoundInvalid)
		return
	}
	switch out.Ability {
	case mana.Inferno:
		fm.effects.Flare(out.Target, color.RGBA{255, 110, 30, 220}, 700*time.Millisecond)
		fm.audio.Play(SoundInferno)
	default:
		fm.effects.Flash(out.Target, color.RGBA{90, 220, 140, 200}, 700*time.Millisecond)
		fm.audio.Play(SoundHeal)
	}
	fm.notices.Show(fmt.Sprintf("%s on %s (-%d mana)", out.Ability, out.Target, out.Cost), NoticeInfo, 2*time.Second)
}

// OnAbilityRejected handles a rejected ability.
func (fm *FeedbackManager) OnAbilityRejected(a mana.Ability, err error) {
	message := fmt.Sprintf("%s failed", a)
	if errors.Is(err, boardsync.ErrInsufficientMana) {
		message = fmt.Sprintf("Not enough mana for %s (%d)", a, a.Cost())
	}
	fm.notices.Show(message, NoticeWarning, 2*time.Second)
	fm.audio.Play(SoundInvalid)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(over boardsync.GameOver) {
	if over.Result == rules.Checkmate {
		fm.notices.Show(fmt.Sprintf("Checkmate! %s wins!", over.Winner), NoticeSuccess, 5*time.Second)
	} else {
		fm.notices.Show("Draw", NoticeInfo, 5*time.Second)
	}
	fm.audio.Play(SoundGameEnd)
}

// OnReset confirms a new game.
func (fm *FeedbackManager) OnReset() {
	fm.notices.Show("New game", NoticeInfo, 1500*time.Millisecond)
}

// OnAssetFailed reports a sprite that could not be loaded.
func (fm *FeedbackManager) OnAssetFailed(p board.Piece, err error) {
	fm.notices.Show(fmt.Sprintf("Could not load %s: %v", p.Name(), err), NoticeError, 4*time.Second)
}
