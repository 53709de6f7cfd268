package commands

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd fps on", []string{"fps", "on"}, true},
		{"cmd   tp 1  2 3 ", []string{"tp", "1", "2", "3"}, true},
		{"cmd ", nil, true},
		{"hello there", nil, false},
		{"CMD fps on", nil, false},
	}
	for _, tc := range cases {
		args, ok := Parse(tc.line)
		if ok != tc.ok || !reflect.DeepEqual(args, tc.args) {
			t.Fatalf("Parse(%q) = %v %v, want %v %v", tc.line, args, ok, tc.args, tc.ok)
		}
	}
}

func TestExecute_runsWithFlagsAndArgs(t *testing.T) {
	r := NewRegistry()
	fs := pflag.NewFlagSet("tp", pflag.ContinueOnError)
	relative := fs.BoolP("relative", "r", false, "move relative to the camera")
	var gotArgs []string
	var gotRelative bool
	r.Register("tp", "[-r] <x> <y> <z>", fs, func(args []string) error {
		gotArgs = args
		gotRelative = *relative
		return nil
	})

	if err := r.Execute([]string{"tp", "-r", "1", "2", "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotRelative || !reflect.DeepEqual(gotArgs, []string{"1", "2", "3"}) {
		t.Fatalf("got relative=%v args=%v", gotRelative, gotArgs)
	}
}

func TestExecute_flagsResetBetweenCalls(t *testing.T) {
	r := NewRegistry()
	fs := pflag.NewFlagSet("tp", pflag.ContinueOnError)
	relative := fs.BoolP("relative", "r", false, "move relative to the camera")
	ran := 0
	r.Register("tp", "[-r] <x> <y> <z>", fs, func([]string) error {
		ran++
		return nil
	})

	// -r is parsed before -5 fails as an unknown shorthand, so Run never sees it.
	if err := r.Execute([]string{"tp", "-r", "-5", "0", "0"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := r.Execute([]string{"tp", "1", "2", "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *relative || fs.Changed("relative") || ran != 1 {
		t.Fatalf("relative=%v changed=%v ran=%d after plain tp", *relative, fs.Changed("relative"), ran)
	}
}

func TestExecute_errors(t *testing.T) {
	r := NewRegistry()
	r.Register("fps", "on|off", nil, func(args []string) error {
		_, err := OnOff(args)
		return err
	})
	if err := r.Execute(nil); err == nil {
		t.Fatalf("expected missing subcommand error")
	}
	if err := r.Execute([]string{"nope"}); err == nil {
		t.Fatalf("expected unknown command error")
	}
	if err := r.Execute([]string{"fps", "--bogus"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for bad flag, got %v", err)
	}
	if err := r.Execute([]string{"fps", "maybe"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for bad arg, got %v", err)
	}
	if err := r.Execute([]string{"fps", "on"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHelpIsSorted(t *testing.T) {
	r := NewRegistry()
	noop := func([]string) error { return nil }
	r.Register("select", "<n>", nil, noop)
	r.Register("close", "", nil, noop)
	want := []string{"close", "select <n>"}
	if got := r.Help(); !reflect.DeepEqual(got, want) {
		t.Fatalf("help %v, want %v", got, want)
	}
}

func TestOnOff(t *testing.T) {
	if v, err := OnOff([]string{"ON"}); err != nil || !v {
		t.Fatalf("ON: %v %v", v, err)
	}
	if v, err := OnOff([]string{"off"}); err != nil || v {
		t.Fatalf("off: %v %v", v, err)
	}
	if _, err := OnOff(nil); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error")
	}
}
