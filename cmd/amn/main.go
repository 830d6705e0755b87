// amn - command line tools for the AM0 and AM1 abstract machines
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/Deric-W/AMN/am0"
	"github.com/Deric-W/AMN/am1"
	"github.com/Deric-W/AMN/config"
	"github.com/Deric-W/AMN/machine"
	"github.com/Deric-W/AMN/repl"
)

var log = commonlog.GetLogger("amn")

func main() {
	machineFlag := flag.String("machine", "", "Instruction set to use: AM0 or AM1 (overrides the configuration)")
	configFlag := flag.String("config", "", "Configuration file (defaults to $AMN_CONFIG or the user configuration directory)")
	verbosity := flag.Int("verbose", 0, "Log verbosity, higher is chattier")
	version := flag.Bool("version", false, "Print the version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: amn [options] <command> [arguments]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  repl                      start the interactive shell\n")
		fmt.Fprintf(os.Stderr, "  exec [-i] [file]          execute a program (stdin when file is omitted)\n")
		fmt.Fprintf(os.Stderr, "  trace [-input v,...] [file]  execute while writing each state to stderr\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  amn repl                       # AM0 shell\n")
		fmt.Fprintf(os.Stderr, "  amn -machine AM1 exec prog.am1 # run an AM1 program\n")
		fmt.Fprintf(os.Stderr, "  amn trace -input 2,42 prog.am0 # trace with fixed input\n")
	}
	flag.Parse()

	if *version {
		fmt.Printf("amn %s\n", machine.Version)
		return
	}

	commonlog.Configure(*verbosity, nil)

	path := *configFlag
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail("invalid configuration: %v", err)
	}
	if *machineFlag != "" {
		cfg.Machine = strings.ToUpper(*machineFlag)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		atexit.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch cfg.Machine {
	case "AM0":
		dispatch(command, args, cfg, kit[am0.Instruction]{
			set:          machine.ParseFunc[am0.Instruction](am0.ParseLine),
			parseProgram: am0.ParseProgram,
			newMachine: func(input machine.Input) machine.Machine[am0.Instruction] {
				return am0.Default(input)
			},
		})
	case "AM1":
		dispatch(command, args, cfg, kit[am1.Instruction]{
			set:          machine.ParseFunc[am1.Instruction](am1.ParseLine),
			parseProgram: am1.ParseProgram,
			newMachine: func(input machine.Input) machine.Machine[am1.Instruction] {
				return am1.Default(input)
			},
		})
	default:
		fail("unknown machine %q, expected AM0 or AM1", cfg.Machine)
	}
	atexit.Exit(0)
}

// kit bundles everything machine-specific the subcommands need.
type kit[I any] struct {
	set          machine.InstructionSet[I]
	parseProgram func(source string) ([]I, error)
	newMachine   func(input machine.Input) machine.Machine[I]
}

func dispatch[I any](command string, args []string, cfg config.Config, k kit[I]) {
	switch command {
	case "repl":
		cmdRepl(args, cfg, k)
	case "exec":
		cmdExec(args, cfg, k)
	case "trace":
		cmdTrace(args, cfg, k)
	default:
		fail("unknown command %q, expected repl, exec or trace", command)
	}
}

// ---------------------------------------------------------------------------
// Subcommands
// ---------------------------------------------------------------------------

func cmdRepl[I any](args []string, cfg config.Config, k kit[I]) {
	flags := flag.NewFlagSet("repl", flag.ExitOnError)
	flags.Parse(args)

	m := k.newMachine(machine.NewPromptInput(os.Stdin, os.Stdout, cfg.InputPrompt))
	startRepl(cfg, k, m)
}

func cmdExec[I any](args []string, cfg config.Config, k kit[I]) {
	flags := flag.NewFlagSet("exec", flag.ExitOnError)
	interactive := flags.Bool("i", false, "Open the shell after executing the program")
	flags.Parse(args)

	program := loadProgram(flags.Args(), k.parseProgram)
	m := k.newMachine(machine.NewPromptInput(os.Stdin, os.Stdout, cfg.InputPrompt))
	for output, err := range machine.Run(m, program) {
		if err != nil {
			fail("error while executing: %v", err)
		}
		if output.Present {
			fmt.Printf("Output: %d\n", output.Value)
		}
	}
	log.Infof("executed %d instructions", len(program))

	if *interactive {
		startRepl(cfg, k, m)
	}
}

func cmdTrace[I any](args []string, cfg config.Config, k kit[I]) {
	flags := flag.NewFlagSet("trace", flag.ExitOnError)
	inputFlag := flags.String("input", "", "Comma-separated input values for the program")
	flags.Parse(args)

	program := loadProgram(flags.Args(), k.parseProgram)
	input := machine.NewSliceInput(parseInput(*inputFlag)...)
	m := k.newMachine(input)

	var outputs []int
	fmt.Fprintf(os.Stderr, "%s\n", m.State(input.Remaining(), outputs))
	for output, err := range machine.Run(m, program) {
		if err != nil {
			fail("error while executing: %v", err)
		}
		if output.Present {
			outputs = append(outputs, output.Value)
			fmt.Printf("Output: %d\n", output.Value)
		}
		fmt.Fprintf(os.Stderr, "%s\n", m.State(input.Remaining(), outputs))
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func startRepl[I any](cfg config.Config, k kit[I], m machine.Machine[I]) {
	source := repl.NewLinerSource(cfg.HistoryFile)
	atexit.Register(func() { source.Close() })
	defer source.Close()

	shell := repl.New(k.set, k.parseProgram, m, source, os.Stdout)
	shell.SetPrompt(cfg.Prompt)
	banner := fmt.Sprintf("Welcome to the %s REPL, type 'help' for help", cfg.Machine)
	if err := shell.Loop(banner); err != nil {
		fail("shell failed: %v", err)
	}
}

// loadProgram reads the program source from the named file, or stdin when
// no file is given, and parses it.
func loadProgram[I any](args []string, parse func(string) ([]I, error)) []I {
	var source []byte
	var err error
	switch len(args) {
	case 0:
		source, err = io.ReadAll(os.Stdin)
	case 1:
		source, err = os.ReadFile(args[0])
	default:
		fail("expected at most one program file, got %d", len(args))
	}
	if err != nil {
		fail("cannot read program: %v", err)
	}
	program, err := parse(string(source))
	if err != nil {
		fail("error while parsing: %v", err)
	}
	log.Debugf("parsed %d instructions", len(program))
	return program
}

// parseInput splits a comma- or space-separated list of integers.
func parseInput(text string) []int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' '
	})
	values := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			fail("invalid input value %q", field)
		}
		values = append(values, value)
	}
	return values
}

func fail(format string, args ...any) {
	log.Errorf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}
