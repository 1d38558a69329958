package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
)

var errHelp = errors.New("help requested")

type Options struct {
	ModelPath      string
	FrameResources int
}

func DefaultOptions() Options {
	return Options{FrameResources: DefaultFrameResources}
}

func ParseArgs(args []string) (Options, error) {
	opts := DefaultOptions()

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--model":
			if i+1 >= len(args) {
				return opts, errors.New("--model needs a path")
			}
			i++
			opts.ModelPath = args[i]
		case "--frames":
			if i+1 >= len(args) {
				return opts, errors.New("--frames needs a count")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return opts, errors.Wrapf(err, "--frames %q", args[i])
			}
			if n < 2 {
				return opts, errors.Newf("--frames must be at least 2, got %d", n)
			}
			opts.FrameResources = n
		case "--help", "-h":
			return opts, errHelp
		default:
			return opts, errors.Newf("unrecognized option: %s", arg)
		}
	}

	return opts, nil
}

func printUsage() {
	fmt.Println("\nOptions")
	fmt.Println("\t--model <path>")
	fmt.Println("\t\tLoad a model in the car text format, or a Wavefront .obj file")
	fmt.Println("\t--frames <n>")
	fmt.Printf("\t\tNumber of frame resources in flight (default %d, minimum 2)\n", DefaultFrameResources)
	fmt.Println("\nControls")
	fmt.Println("\tWASD to move, left drag to look around, right click to pick a triangle")
}

func (app *PickingApplication) ProcessCommandLineArgs() error {
	opts, err := ParseArgs(os.Args[1:])
	if errors.Is(err, errHelp) {
		printUsage()
		os.Exit(0)
		return nil
	} else if err != nil {
		fmt.Printf("\n%s\n", err)
		fmt.Println("\nUse --help or -h for option list.")
		os.Exit(0)
		return nil
	}

	app.options = opts
	return nil
}
