// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package robot simulates a hull painting robot driven by an intcode program.
//
// Each step the robot reports the color of the panel beneath it, and the
// program answers with two outputs: the color to paint the panel, and the
// direction to turn before moving forward one panel.
package robot

import (
	"log"

	"github.com/ezrec/intcode/cpu"
)

// Color of a hull panel.
type Color int64

const (
	BLACK = Color(0)
	WHITE = Color(1)
)

// Turn instructions.
const (
	TURN_LEFT  = int64(0)
	TURN_RIGHT = int64(1)
)

// Direction the robot faces.
type Direction int

//go:generate go tool stringer -linecomment -type=Direction
const (
	UP    = Direction(0) // up
	RIGHT = Direction(1) // right
	DOWN  = Direction(2) // down
	LEFT  = Direction(3) // left
)

// Point is a panel location. Y increases upwards.
type Point struct {
	X, Y int
}

// Move returns the neighbouring point in a direction.
func (pt Point) Move(dir Direction) Point {
	switch dir {
	case UP:
		pt.Y++
	case RIGHT:
		pt.X++
	case DOWN:
		pt.Y--
	case LEFT:
		pt.X--
	}
	return pt
}

// Robot is a painting robot controlled by its own processor.
type Robot struct {
	Verbose bool

	Cpu      *cpu.Processor
	Position Point
	Facing   Direction
}

// NewRobot creates a robot at the origin, facing up.
func NewRobot(program cpu.Program) (robot *Robot) {
	robot = &Robot{
		Cpu: cpu.NewProcessor(program, nil),
	}

	return
}

// Step reports the color of the current panel to the program, and collects
// the color to paint it. The robot then turns and moves one panel.
// done is set once the program halts; a step interrupted by a halt is
// discarded.
func (robot *Robot) Step(color Color) (paint Color, done bool, err error) {
	robot.Cpu.AddInput(int64(color))

	state, err := robot.Cpu.Run(cpu.PAUSE_ON_OUTPUT)
	if err != nil {
		return
	}
	if state == cpu.HALTED {
		done = true
		return
	}

	state, err = robot.Cpu.Run(cpu.PAUSE_ON_OUTPUT)
	if err != nil {
		return
	}
	if state == cpu.HALTED {
		if robot.Verbose {
			log.Printf("robot: halted before turn at %v", robot.Position)
		}
		done = true
		return
	}

	out := robot.Cpu.Last(2)
	paint = Color(out[0])
	turn := out[1]

	switch turn {
	case TURN_LEFT:
		robot.Facing = (robot.Facing + 3) % 4
	case TURN_RIGHT:
		robot.Facing = (robot.Facing + 1) % 4
	default:
		err = ErrTurn(turn)
		return
	}

	if robot.Verbose {
		log.Printf("robot: paint %v at %v, face %v", paint, robot.Position, robot.Facing)
	}

	robot.Position = robot.Position.Move(robot.Facing)

	return
}
