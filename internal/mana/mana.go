// Package mana implements the mana pool and the ability catalogue.
package mana

import (
	"errors"
	"fmt"

	"github.com/hailam/chess3d/internal/rules"
)

// Max is the capacity of a pool.
const Max = 100

// ErrInsufficient is returned when a pool cannot pay a cost.
var ErrInsufficient = errors.New("not enough mana")

// Pool is an integer resource in [0, Max]. It never regenerates on its own.
type Pool struct {
	value int
}

// NewPool creates a pool holding start, clamped to [0, Max].
func NewPool(start int) *Pool {
	return &Pool{value: clamp(start)}
}

// Value returns the current amount.
func (p *Pool) Value() int {
	return p.value
}

// CanAfford reports whether the pool holds at least cost.
func (p *Pool) CanAfford(cost int) bool {
	return cost >= 0 && p.value >= cost
}

// Spend debits cost. The pool is left unchanged on error.
func (p *Pool) Spend(cost int) error {
	if cost < 0 {
		return fmt.Errorf("negative cost %d", cost)
	}
	if p.value < cost {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficient, p.value, cost)
	}
	p.value -= cost
	return nil
}

// Set replaces the current amount, clamped to [0, Max].
func (p *Pool) Set(v int) {
	p.value = clamp(v)
}

// Refill restores the pool to Max.
func (p *Pool) Refill() {
	p.value = Max
}

// Fraction returns the fill level in [0, 1] for gauges.
func (p *Pool) Fraction() float64 {
	return float64(p.value) / Max
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > Max {
		return Max
	}
	return v
}

// Ability is a mana-gated action from the catalogue.
type Ability int

const (
	HealingAura Ability = iota
	Inferno
)

// Abilities lists the catalogue in display order.
var Abilities = []Ability{HealingAura, Inferno}

type spec struct {
	name   string
	cost   int
	effect rules.AbilityEffect
}

var catalogue = map[Ability]spec{
	HealingAura: {name: "Healing Aura", cost: 20, effect: rules.Heal},
	Inferno:     {name: "Inferno", cost: 30, effect: rules.Remove},
}

// Name returns the display name.
func (a Ability) Name() string {
	if s, ok := catalogue[a]; ok {
		return s.name
	}
	return "Unknown"
}

func (a Ability) String() string {
	return a.Name()
}

// Cost returns the mana cost.
func (a Ability) Cost() int {
	return catalogue[a].cost
}

// Effect returns the board effect the ability applies.
func (a Ability) Effect() rules.AbilityEffect {
	return catalogue[a].effect
}

// Valid reports whether a is in the catalogue.
func (a Ability) Valid() bool {
	_, ok := catalogue[a]
	return ok
}

// ParseAbility looks an ability up by its command name ("heal", "inferno")
// or display name.
func ParseAbility(s string) (Ability, error) {
	switch s {
	case "heal", "healing-aura", "Healing Aura":
		return HealingAura, nil
	case "inferno", "Inferno":
		return Inferno, nil
	}
	return 0, fmt.Errorf("unknown ability %q", s)
}
