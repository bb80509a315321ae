package command

// DefaultDepth is the undo depth used when none is configured.
const DefaultDepth = 128

// entry is one undo step; coalesced commands share an entry.
type entry struct {
	cmds []Command
}

func (e *entry) undo() {
	for i := len(e.cmds) - 1; i >= 0; i-- {
		e.cmds[i].Undo()
	}
}

func (e *entry) apply() error {
	for i, c := range e.cmds {
		if err := c.Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				e.cmds[j].Undo()
			}
			return err
		}
	}
	return nil
}

func (e *entry) describe() string {
	return e.cmds[len(e.cmds)-1].Describe()
}

// Stack is a bounded undo/redo history. The oldest entries are dropped once
// depth is exceeded.
type Stack struct {
	depth   int
	history []*entry
	cursor  int
}

// NewStack returns a stack holding at most depth undo steps.
func NewStack(depth int) *Stack {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Stack{depth: depth}
}

// PushAndApply applies cmd and records it on success. A failed command never
// enters the history and leaves any redo steps in place.
func (s *Stack) PushAndApply(cmd Command) error {
	if err := cmd.Apply(); err != nil {
		logger().Debug("apply failed", "command", cmd.Describe(), "error", err)
		return err
	}
	s.history = s.history[:s.cursor]
	if s.cursor > 0 {
		top := s.history[s.cursor-1]
		if top.cmds[len(top.cmds)-1].CanCoalesce(cmd) {
			top.cmds = append(top.cmds, cmd)
			logger().Debug("applied", "command", cmd.Describe(), "coalesced", true)
			return nil
		}
	}
	s.history = append(s.history, &entry{cmds: []Command{cmd}})
	s.cursor++
	if len(s.history) > s.depth {
		drop := len(s.history) - s.depth
		s.history = append([]*entry(nil), s.history[drop:]...)
		s.cursor -= drop
	}
	logger().Debug("applied", "command", cmd.Describe())
	return nil
}

// Undo reverts the most recent step. It reports false when there is nothing to undo.
func (s *Stack) Undo() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	e := s.history[s.cursor]
	e.undo()
	logger().Debug("undone", "command", e.describe())
	return true
}

// Redo re-applies the most recently undone step. It returns false with a nil
// error when there is nothing to redo.
func (s *Stack) Redo() (bool, error) {
	if s.cursor >= len(s.history) {
		return false, nil
	}
	e := s.history[s.cursor]
	if err := e.apply(); err != nil {
		return false, err
	}
	s.cursor++
	logger().Debug("redone", "command", e.describe())
	return true, nil
}

func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

func (s *Stack) CanRedo() bool {
	return s.cursor < len(s.history)
}

// UndoDescription describes the step Undo would revert.
func (s *Stack) UndoDescription() (string, bool) {
	if s.cursor == 0 {
		return "", false
	}
	return s.history[s.cursor-1].describe(), true
}

// RedoDescription describes the step Redo would re-apply.
func (s *Stack) RedoDescription() (string, bool) {
	if s.cursor >= len(s.history) {
		return "", false
	}
	return s.history[s.cursor].describe(), true
}

// Len is the number of undoable steps.
func (s *Stack) Len() int {
	return s.cursor
}
