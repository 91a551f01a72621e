package robot

import (
	"strings"

	"github.com/ezrec/intcode/cpu"
)

// Panel is the state of one hull panel.
type Panel struct {
	Color   Color
	Painted int // Times painted.
}

// Hull is the grid of panels painted by a robot.
type Hull struct {
	Panels map[Point]Panel
	Robot  *Robot
	Steps  int
}

// NewHull creates a hull whose starting panel has the given color.
func NewHull(program cpu.Program, start Color) (hull *Hull) {
	hull = &Hull{
		Panels: map[Point]Panel{{}: {Color: start}},
		Robot:  NewRobot(program),
	}

	return
}

// Run steps the robot until its program halts.
func (hull *Hull) Run() (err error) {
	for {
		pos := hull.Robot.Position
		panel := hull.Panels[pos]

		paint, done, err := hull.Robot.Step(panel.Color)
		if err != nil {
			return &ErrRuntime{Step: hull.Steps, Position: pos, Err: err}
		}
		if done {
			return nil
		}

		panel.Color = paint
		panel.Painted++
		hull.Panels[pos] = panel
		hull.Steps++
	}
}

// Painted returns the number of panels painted at least once.
func (hull *Hull) Painted() (count int) {
	for _, panel := range hull.Panels {
		if panel.Painted > 0 {
			count++
		}
	}
	return
}

// Bounds returns the corners of the smallest rectangle holding every
// known panel, and the origin.
func (hull *Hull) Bounds() (lo, hi Point) {
	for pt := range hull.Panels {
		lo.X = min(lo.X, pt.X)
		lo.Y = min(lo.Y, pt.Y)
		hi.X = max(hi.X, pt.X)
		hi.Y = max(hi.Y, pt.Y)
	}
	return
}

// String renders the hull, top row first. White panels are '#'.
func (hull *Hull) String() string {
	lo, hi := hull.Bounds()

	var text strings.Builder
	for y := hi.Y; y >= lo.Y; y-- {
		for x := lo.X; x <= hi.X; x++ {
			if hull.Panels[Point{x, y}].Color == WHITE {
				text.WriteByte('#')
			} else {
				text.WriteByte(' ')
			}
		}
		text.WriteByte('\n')
	}

	return text.String()
}
