// Package control applies operator commands to a running generator. The TUI,
// the websocket feed and the tool server all go through it.
package control

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hwmonitor/internal/simulator"
	"hwmonitor/internal/validator"
)

// Actions understood by Apply.
const (
	ActionSetLoad     = "set_load"
	ActionSetAmbient  = "set_ambient"
	ActionSetInterval = "set_interval"
	ActionReset       = "reset"
	ActionPause       = "pause"
	ActionResume      = "resume"
)

var (
	ErrMissingValue = errors.New("value is required for this action")
	ErrNoPauser     = errors.New("pause is not supported here")
)

// Target is the part of the generator that commands mutate.
// *simulator.Simulator implements it.
type Target interface {
	SetSystemLoad(mode simulator.LoadMode)
	SetAmbientTemperature(celsius float64)
	SetUpdateInterval(d time.Duration)
	Reset()
}

// Pauser suspends and resumes polling.
type Pauser interface {
	Pause()
	Resume()
}

// Command is one operator request. Value carries degrees Celsius for
// set_ambient and seconds for set_interval.
type Command struct {
	Action string   `json:"action" validate:"required,oneof=set_load set_ambient set_interval reset pause resume"`
	Mode   string   `json:"mode,omitempty" validate:"omitempty,oneof=normal gaming stress"`
	Value  *float64 `json:"value,omitempty"`
}

// Controller validates and applies commands.
type Controller struct {
	target Target
	pauser Pauser
	v      validator.Validator
}

// New builds a Controller. pauser may be nil.
func New(target Target, pauser Pauser) *Controller {
	return &Controller{
		target: target,
		pauser: pauser,
		v:      validator.NewValidator(),
	}
}

// Apply validates cmd and runs it against the target.
func (c *Controller) Apply(cmd Command) error {
	if err := validator.Error(c.v.Validate(cmd)); err != nil {
		return err
	}

	switch cmd.Action {
	case ActionSetLoad:
		mode, ok := simulator.ParseLoadMode(cmd.Mode)
		if !ok {
			return fmt.Errorf("mode is required for %s", cmd.Action)
		}
		c.target.SetSystemLoad(mode)
	case ActionSetAmbient:
		v, err := value(cmd)
		if err != nil {
			return err
		}
		c.target.SetAmbientTemperature(v)
	case ActionSetInterval:
		v, err := value(cmd)
		if err != nil {
			return err
		}
		c.target.SetUpdateInterval(time.Duration(v * float64(time.Second)))
	case ActionReset:
		c.target.Reset()
	case ActionPause, ActionResume:
		if c.pauser == nil {
			return ErrNoPauser
		}
		if cmd.Action == ActionPause {
			c.pauser.Pause()
		} else {
			c.pauser.Resume()
		}
	}
	return nil
}

func value(cmd Command) (float64, error) {
	if cmd.Value == nil || math.IsNaN(*cmd.Value) || math.IsInf(*cmd.Value, 0) {
		return 0, fmt.Errorf("%s: %w", cmd.Action, ErrMissingValue)
	}
	return *cmd.Value, nil
}

// SetLoad is shorthand for a set_load command.
func SetLoad(mode simulator.LoadMode) Command {
	return Command{Action: ActionSetLoad, Mode: string(mode)}
}

// SetAmbient is shorthand for a set_ambient command.
func SetAmbient(celsius float64) Command {
	return Command{Action: ActionSetAmbient, Value: &celsius}
}

// SetInterval is shorthand for a set_interval command.
func SetInterval(d time.Duration) Command {
	secs := d.Seconds()
	return Command{Action: ActionSetInterval, Value: &secs}
}
