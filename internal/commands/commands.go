package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

const prefix = "cmd "

// ErrUsage wraps argument errors so the console can print the command's usage.
var ErrUsage = errors.New("usage")

// Command is a console subcommand. Flags are parsed into FlagSet before Run is called with the
// remaining positional arguments.
type Command struct {
	Name    string
	Usage   string
	FlagSet *pflag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *pflag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = pflag.NewFlagSet(name, pflag.ContinueOnError)
	}
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns registered command names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Help returns one "name usage" line per command.
func (r *Registry) Help() []string {
	var lines []string
	for _, name := range r.Names() {
		lines = append(lines, strings.TrimSpace(name+" "+r.cmds[name].Usage))
	}
	return lines
}

// Parse interprets a console line. Lines starting with "cmd " are tokenized by whitespace and
// returned with ok true; anything else returns nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs args[0] with the rest as flags and positional arguments.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand (try: %s)", strings.Join(r.Names(), ", "))
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	resetFlags(cmd.FlagSet)
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w: %s %s", cmd.Name, ErrUsage, cmd.Name, cmd.Usage)
	}
	if err := cmd.Run(cmd.FlagSet.Args()); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%s: %w: %s %s", cmd.Name, ErrUsage, cmd.Name, cmd.Usage)
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// resetFlags restores defaults so values from an earlier invocation, including one that failed
// to parse, do not leak into this one.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// OnOff parses the single "on"/"off" argument used by toggle commands.
func OnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, ErrUsage
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, ErrUsage
}
