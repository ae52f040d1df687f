// Package configurator implements the build-your-own rosary flow as a finite
// state machine: Material -> Color -> Crucifix -> Review.
package configurator

import (
	"errors"
	"strings"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateMaterial State = "material"
	StateColor    State = "color"
	StateCrucifix State = "crucifix"
	StateReview   State = "review"
)

const (
	CustomItemName     = "Terço Personalizado Único"
	CustomItemCategory = model.CategoryRosaries
)

var (
	ErrNotSelecting = errors.New("configurator: review step accepts only back or commit")
	ErrWrongPool    = errors.New("configurator: option does not belong to the current step")
	ErrUnknownState = errors.New("configurator: unknown state")
)

type step struct {
	number int
	pool   model.OptionType // empty on the review step
	next   State
	prev   State
}

// transitions is the whole state machine. Selecting moves to next, Back
// moves to prev. Material's prev is itself so Back is a no-op there.
var transitions = map[State]step{
	StateMaterial: {number: 1, pool: model.OptionMaterial, next: StateColor, prev: StateMaterial},
	StateColor:    {number: 2, pool: model.OptionColor, next: StateCrucifix, prev: StateMaterial},
	StateCrucifix: {number: 3, pool: model.OptionCrucifix, next: StateReview, prev: StateColor},
	StateReview:   {number: 4, next: StateReview, prev: StateCrucifix},
}

// Wizard is the per-visitor configurator state. It is JSON friendly so it
// can be kept in a Store between requests.
type Wizard struct {
	State     State                       `json:"state"`
	Selection model.CustomRosarySelection `json:"selection"`
}

func New() *Wizard {
	return &Wizard{State: StateMaterial}
}

func (w *Wizard) current() (step, error) {
	s, ok := transitions[w.State]
	if !ok {
		return step{}, ErrUnknownState
	}
	return s, nil
}

// Step is the 1-based position of the current state.
func (w *Wizard) Step() int {
	s, err := w.current()
	if err != nil {
		return 0
	}
	return s.number
}

// Pool is the option pool offered by the current state, empty on review.
func (w *Wizard) Pool() model.OptionType {
	s, err := w.current()
	if err != nil {
		return ""
	}
	return s.pool
}

// Select stores opt for the current step and advances.
func (w *Wizard) Select(opt model.RosaryOption) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	if s.pool == "" {
		return ErrNotSelecting
	}
	if opt.Type != s.pool {
		return ErrWrongPool
	}

	chosen := opt
	w.Selection.Set(s.pool, &chosen)
	w.State = s.next
	return nil
}

// Back moves one state back; it does nothing on the first step.
func (w *Wizard) Back() {
	if s, err := w.current(); err == nil {
		w.State = s.prev
	}
}

// Reset returns to the first step with nothing selected.
func (w *Wizard) Reset() {
	w.State = StateMaterial
	w.Selection = model.CustomRosarySelection{}
}

// Price is the running total for the current selection.
func (w *Wizard) Price(base float64) float64 {
	return Price(base, w.Selection)
}

// Price adds the material, color and crucifix deltas to base. Unselected
// pools add nothing; legacy size, medal and text fields are ignored.
func Price(base float64, sel model.CustomRosarySelection) float64 {
	total := decimal.NewFromFloat(base)
	for _, opt := range []*model.RosaryOption{sel.Material, sel.Color, sel.Crucifix} {
		if opt != nil {
			total = total.Add(decimal.NewFromFloat(opt.Price))
		}
	}
	return total.Round(2).InexactFloat64()
}

// Commit turns the selection into a custom cart line and resets the wizard.
// materials is the material pool, used for the fallback image. Commit is
// accepted in every state, not only Review: a wizard with nothing selected
// never reaches Review, and committing it must still yield a base-price item.
func (w *Wizard) Commit(base float64, materials []model.RosaryOption, id string) model.CartItem {
	selection := w.Selection
	item := model.CartItem{
		Product: model.Product{
			ID:          id,
			Name:        CustomItemName,
			Category:    CustomItemCategory,
			Price:       Price(base, selection),
			Description: describe(selection),
			Image:       customImage(selection, materials),
			Stock:       1,
		},
		Quantity:      1,
		IsCustom:      true,
		CustomDetails: &selection,
	}
	if item.Image != "" {
		item.Images = []string{item.Image}
	}

	w.Reset()
	return item
}

func describe(sel model.CustomRosarySelection) string {
	var names []string
	for _, opt := range []*model.RosaryOption{sel.Material, sel.Color, sel.Crucifix} {
		if opt != nil {
			names = append(names, opt.Name)
		}
	}
	if len(names) == 0 {
		return "Customizado: modelo base"
	}
	return "Customizado: " + strings.Join(names, ", ")
}

func customImage(sel model.CustomRosarySelection, materials []model.RosaryOption) string {
	if sel.Material != nil && sel.Material.Image != "" {
		return sel.Material.Image
	}
	for _, m := range materials {
		if m.Image != "" {
			return m.Image
		}
	}
	return ""
}
