package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/robot"
	"github.com/ezrec/intcode/translate"
)

func main() {
	var program string
	var white bool
	var verbose bool

	flag.StringVar(&program, "p", "", "program text file")
	flag.BoolVar(&white, "w", false, "Start on a white panel")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 || len(program) == 0 {
		log.Fatalf("%v: usage: %v -p program [-w] [-v]", os.Args[0], os.Args[0])
	}

	prog, err := cpu.LoadProgram(program)
	if err != nil {
		log.Fatal(err)
	}

	start := robot.BLACK
	if white {
		start = robot.WHITE
	}

	hull := robot.NewHull(prog, start)
	hull.Robot.Verbose = verbose
	hull.Robot.Cpu.Verbose = verbose

	err = hull.Run()
	if err != nil {
		log.Fatal(err)
	}

	translate.Printer().Printf("%d panels painted in %d steps\n", hull.Painted(), hull.Steps)
	fmt.Print(hull.String())
}
