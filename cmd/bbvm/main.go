// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/bbvm/cpu"
	"github.com/ezrec/bbvm/emulator"
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool
	var maxInstructions int
	var viewVerbose bool
	var viewShort bool
	var viewSubrange string
	var viewFinal bool

	flag.StringVar(&compile, "c", "", ".bbs file to compile")
	flag.BoolVar(&save, "s", false, "Save the compiled image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output for -s")
	flag.IntVar(&maxInstructions, "max-instructions", cpu.DEFAULT_MAX_INSTRUCTIONS, "Instruction ceiling")
	flag.BoolVar(&viewVerbose, "view-verbose", false, "Show registers and memory after each step")
	flag.BoolVar(&viewShort, "view-short", false, "Show registers after each step")
	flag.StringVar(&viewSubrange, "view-subrange", "", "Show memory \"lo hi\" after each step")
	flag.BoolVar(&viewFinal, "view-final", false, "Show registers and memory at termination")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	config := cpu.DefaultConfig()
	config.MaxInstructions = maxInstructions

	emu := emulator.NewEmulator(config)
	emu.Verbose = verbose
	emu.Output = os.Stdout
	emu.Console.Output = os.Stdout

	emu.View.Verbose = viewVerbose
	emu.View.Short = viewShort
	emu.View.Final = viewFinal
	if len(viewSubrange) != 0 {
		err := emu.View.ParseSubrange(viewSubrange)
		if err != nil {
			log.Fatalf("-view-subrange: %v", err)
		}
	}

	if len(compile) != 0 {
		// Compile a new image.
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Assemble(prog)
	} else {
		// Load an existing image.
		if flag.NArg() != 1 {
			log.Fatalf("usage: %v [options] image.bbx | -c file.bbs", os.Args[0])
		}

		path := flag.Arg(0)
		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		defer inf.Close()

		emu.Image, err = cpu.ParseImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	if save {
		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err := cpu.WriteImage(ouf, emu.Image)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	result, err := emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if !viewFinal {
		fmt.Fprintf(os.Stderr, "%v: %v after %d/%d instructions, return %d\n",
			os.Args[0], result.Status(), result.Ticks, result.Limit, result.Return)
	}
}
