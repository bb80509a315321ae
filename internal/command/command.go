// Package command implements reversible loadout mutations and the bounded
// undo history they are pushed onto.
package command

import (
	"log/slog"
)

// Command is one reversible mutation.
//
// Apply either mutates the loadout or returns an error with the loadout left
// untouched. Undo reverses a successful Apply and never fails; calling it on a
// command that is not applied is a no-op.
type Command interface {
	Apply() error
	Undo()
	Describe() string
	// CanCoalesce reports whether other may be merged into the same undo step
	// as this command when pushed right after it.
	CanCoalesce(other Command) bool
}

// BuildFunc plans the children of a Composite against the current loadout state.
type BuildFunc func() ([]Command, error)

// Composite is an all-or-nothing sequence of commands planned at apply time.
type Composite struct {
	desc    string
	build   BuildFunc
	applied []Command
	done    bool
}

// NewComposite returns a composite whose children are produced by build each
// time it is applied.
func NewComposite(desc string, build BuildFunc) *Composite {
	return &Composite{desc: desc, build: build}
}

// Apply plans and applies all children. If any child fails, the ones already
// applied are undone in reverse order and the child's error is returned.
func (c *Composite) Apply() error {
	if c.done {
		return nil
	}
	children, err := c.build()
	if err != nil {
		return err
	}
	applied := make([]Command, 0, len(children))
	for _, child := range children {
		if err := child.Apply(); err != nil {
			for i := len(applied) - 1; i >= 0; i-- {
				applied[i].Undo()
			}
			logger().Debug("composite rolled back", "command", c.desc, "failed", child.Describe(), "error", err)
			return err
		}
		applied = append(applied, child)
	}
	c.applied = applied
	c.done = true
	return nil
}

func (c *Composite) Undo() {
	if !c.done {
		return
	}
	for i := len(c.applied) - 1; i >= 0; i-- {
		c.applied[i].Undo()
	}
	c.applied = nil
	c.done = false
}

func (c *Composite) Describe() string {
	return c.desc
}

func (c *Composite) CanCoalesce(Command) bool {
	return false
}

// Children returns the commands of the last successful apply.
func (c *Composite) Children() []Command {
	out := make([]Command, len(c.applied))
	copy(out, c.applied)
	return out
}

func logger() *slog.Logger {
	return slog.Default().With("component", "command")
}
