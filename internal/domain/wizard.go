package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Step is a state of the selection wizard.
type Step int

const (
	StepForecast Step = iota
	StepLevel1
	StepLevel2
	StepLevel3
	StepVariables
)

var stepNames = [...]string{"forecast", "level1", "level2", "level3", "variables"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

var (
	ErrWrongStep       = errors.New("action not allowed in current step")
	ErrEmptyValue      = errors.New("empty selection value")
	ErrUnknownVariable = errors.New("variable not in forecast catalog")
)

// Selection is a snapshot of everything the user has chosen so far.
type Selection struct {
	Forecast  ForecastType
	Level1    string
	Level2    string
	Level3    string
	Variables []string
}

// ForecastName returns the display name of the chosen forecast, or "".
func (s Selection) ForecastName() string { return s.Forecast.Name }

// HasVariable reports whether v is in the variable set.
func (s Selection) HasVariable(v string) bool { return slices.Contains(s.Variables, v) }

func (s Selection) clone() Selection {
	s.Variables = slices.Clone(s.Variables)
	return s
}

// Wizard is the five-step selection state machine. It is a value: every
// transition returns a new Wizard and leaves the receiver untouched.
type Wizard struct {
	step Step
	sel  Selection
}

// NewWizard returns a wizard at StepForecast with nothing selected.
func NewWizard() Wizard { return Wizard{step: StepForecast} }

func (w Wizard) Step() Step { return w.step }

// Selection returns a copy of the current selection.
func (w Wizard) Selection() Selection { return w.sel.clone() }

// SelectForecast records the forecast type and advances to StepLevel1.
func (w Wizard) SelectForecast(f ForecastType) (Wizard, error) {
	if w.step != StepForecast {
		return w, fmt.Errorf("select forecast in %s: %w", w.step, ErrWrongStep)
	}
	if f.IsZero() {
		return w, fmt.Errorf("select forecast: %w", ErrEmptyValue)
	}
	next := w.next(StepLevel1)
	next.sel.Forecast = f
	return next, nil
}

// SelectLevel1 records the province/city and advances to StepLevel2.
func (w Wizard) SelectLevel1(v string) (Wizard, error) {
	if err := w.guard(StepLevel1, v); err != nil {
		return w, err
	}
	next := w.next(StepLevel2)
	next.sel.Level1 = v
	return next, nil
}

// SelectLevel2 records the district and advances to StepLevel3.
func (w Wizard) SelectLevel2(v string) (Wizard, error) {
	if err := w.guard(StepLevel2, v); err != nil {
		return w, err
	}
	next := w.next(StepLevel3)
	next.sel.Level2 = v
	return next, nil
}

// SelectLevel3 records the neighbourhood and advances to StepVariables.
func (w Wizard) SelectLevel3(v string) (Wizard, error) {
	if err := w.guard(StepLevel3, v); err != nil {
		return w, err
	}
	next := w.next(StepVariables)
	next.sel.Level3 = v
	return next, nil
}

// ToggleVariable adds v to the variable set, or removes it if present.
// The step does not change.
func (w Wizard) ToggleVariable(v string) (Wizard, error) {
	if err := w.guard(StepVariables, v); err != nil {
		return w, err
	}
	if !slices.Contains(VariableNames(w.sel.Forecast.Kind), v) {
		return w, fmt.Errorf("toggle %q for %s: %w", v, w.sel.Forecast.Name, ErrUnknownVariable)
	}

	next := w.next(StepVariables)
	if i := slices.Index(next.sel.Variables, v); i >= 0 {
		next.sel.Variables = slices.Delete(next.sel.Variables, i, i+1)
	} else {
		next.sel.Variables = append(next.sel.Variables, v)
	}
	return next, nil
}

// Back returns to the previous step and clears the field that step had set.
// Leaving StepVariables also clears the variable set. Back at StepForecast is
// a no-op.
func (w Wizard) Back() Wizard {
	switch w.step {
	case StepVariables:
		next := w.next(StepLevel3)
		next.sel.Level3 = ""
		next.sel.Variables = nil
		return next
	case StepLevel3:
		next := w.next(StepLevel2)
		next.sel.Level2 = ""
		return next
	case StepLevel2:
		next := w.next(StepLevel1)
		next.sel.Level1 = ""
		return next
	case StepLevel1:
		next := w.next(StepForecast)
		next.sel.Forecast = ForecastType{}
		return next
	default:
		return w
	}
}

// AvailableVariables lists the catalog entries for the chosen forecast.
func (w Wizard) AvailableVariables() []Variable {
	if w.sel.Forecast.IsZero() {
		return nil
	}
	return Variables(w.sel.Forecast.Kind)
}

func (w Wizard) guard(want Step, v string) error {
	if w.step != want {
		return fmt.Errorf("select %s in %s: %w", want, w.step, ErrWrongStep)
	}
	if v == "" {
		return fmt.Errorf("select %s: %w", want, ErrEmptyValue)
	}
	return nil
}

// next copies the wizard, including the variable slice, before moving to s.
func (w Wizard) next(s Step) Wizard {
	return Wizard{step: s, sel: w.sel.clone()}
}
