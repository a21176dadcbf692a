// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/fourbit/cpu"
	"github.com/ezrec/fourbit/emulator"
)

func main() {
	var compile string
	var variant string
	var steps int
	var hz float64
	var listing bool
	var trace bool
	var verbose bool

	flag.StringVar(&compile, "c", "-", "program file to assemble, '-' for stdin")
	flag.StringVar(&variant, "m", cpu.VARIANT_LARGE.Name, "machine variant (small, large)")
	flag.IntVar(&steps, "n", 256, "maximum steps to run, 0 for no limit")
	flag.Float64Var(&hz, "hz", 0, "clock rate in Hz, 0 for no delay")
	flag.BoolVar(&listing, "l", false, "print the program listing, do not execute")
	flag.BoolVar(&trace, "t", false, "print machine state after each step")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	arch, err := cpu.LookupVariant(variant)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu, err := emulator.NewEmulator(
		emulator.WithVariant(arch),
		emulator.WithVerbose(verbose),
	)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	var inf io.Reader = os.Stdin
	if compile != "-" {
		file, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer file.Close()
		inf = file
	}

	prog, err := emu.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		printListing(os.Stdout, arch, prog)
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := emulator.NewRunner(emu)
	runner.Clock = emulator.ClockHz(hz)
	runner.MaxSteps = steps
	runner.Diagnose = func(err error) {
		log.Printf("%v: %v", compile, err)
	}
	if trace {
		runner.Observe = func(state cpu.State) {
			fmt.Printf("%4d: pc=%02X sp=%02X a=%X b=%X c=%X f=%v\n",
				state.Steps, state.PC, state.SP, state.A, state.B, state.C, state.F)
		}
	}

	ran, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v: %v", compile, err)
	}

	fmt.Printf("steps: %d\n", ran)
	fmt.Print(emu.Machine.String())
}

// printListing writes each program line with its address and cells.
func printListing(w io.Writer, arch cpu.Variant, prog *cpu.Program) {
	for _, op := range prog.Opcodes {
		text := fmt.Sprintf("% X", op.Values)
		if len(op.Values) == 2 {
			text = cpu.Code{Op: op.Values[0], Operand: op.Values[1]}.String()
		}
		fmt.Fprintf(w, "%02X: %-12v ; %3d: %v\n", arch.Origin+op.Offset, text, op.LineNo, op.Words)
	}
}
