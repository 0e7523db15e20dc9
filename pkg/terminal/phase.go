package terminal

import "slices"

// Phase is the externally visible state of the machine.
type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhasePayment   Phase = "payment"
)

func (p Phase) String() string { return string(p) }

func (p Phase) describe() string {
	switch p {
	case PhaseSelecting:
		return "awaiting a selection"
	case PhasePayment:
		return "awaiting payment"
	default:
		return string(p)
	}
}

// Command is an operation a client can issue.
type Command string

const (
	CmdSelect Command = "select"
	CmdInsert Command = "insert"
	CmdBuy    Command = "buy"
	CmdCancel Command = "cancel"
)

func (c Command) String() string { return string(c) }

// transitions lists the commands each phase accepts and the phase each one
// leads to on success. Buy and cancel always return to selecting, also when
// buy fails with no change; insert stays in payment.
var transitions = map[Phase]map[Command]Phase{
	PhaseSelecting: {
		CmdSelect: PhasePayment,
	},
	PhasePayment: {
		CmdInsert: PhasePayment,
		CmdBuy:    PhaseSelecting,
		CmdCancel: PhaseSelecting,
	},
}

// Allows reports whether phase p accepts cmd.
func (p Phase) Allows(cmd Command) bool {
	_, ok := transitions[p][cmd]
	return ok
}

// Commands returns the commands p accepts, sorted by name.
func (p Phase) Commands() []Command {
	out := make([]Command, 0, len(transitions[p]))
	for cmd := range transitions[p] {
		out = append(out, cmd)
	}
	slices.Sort(out)
	return out
}

func checkPhase(p Phase, cmd Command) error {
	if !p.Allows(cmd) {
		return &PhaseError{Phase: p, Command: cmd}
	}
	return nil
}
