package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"

	"portfolio3d/internal/commands"
)

// RegisterCommands adds the viewer's console commands to reg. Output goes to the session log.
// Numbers starting with '-' must follow "--", e.g. "cmd tp -- -5 2 10".
func (s *Session) RegisterCommands(reg *commands.Registry) {
	toggle := func(name, what string, field *bool) {
		reg.Register(name, "on|off", nil, func(args []string) error {
			on, err := commands.OnOff(args)
			if err != nil {
				return err
			}
			*field = on
			s.log.Info().Bool(name, on).Msg(what)
			return nil
		})
	}
	toggle("fps", "fps overlay", &s.Toggles.ShowFPS)
	toggle("mem", "memory overlay", &s.Toggles.ShowMem)
	toggle("pos", "position overlay", &s.Toggles.ShowPosition)
	toggle("floor", "floor", &s.Toggles.Floor)

	reg.Register("items", "", nil, func([]string) error {
		for i, it := range s.items {
			s.log.Info().Msgf("%d. %s [%s]", i+1, it.Title, strings.Join(it.Technologies, ", "))
		}
		return nil
	})

	reg.Register("select", "<n>", nil, func(args []string) error {
		if len(args) != 1 {
			return commands.ErrUsage
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return commands.ErrUsage
		}
		if !s.Select(n - 1) {
			return fmt.Errorf("no item %d (have %d)", n, len(s.items))
		}
		return nil
	})

	reg.Register("close", "", nil, func([]string) error {
		s.CloseSelection()
		return nil
	})

	tpFlags := pflag.NewFlagSet("tp", pflag.ContinueOnError)
	relative := tpFlags.BoolP("relative", "r", false, "offset from the current position")
	reg.Register("tp", "[-r] <x> <y> <z>", tpFlags, func(args []string) error {
		if len(args) != 3 {
			return commands.ErrUsage
		}
		var v mgl32.Vec3
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 32)
			if err != nil {
				return commands.ErrUsage
			}
			v[i] = float32(f)
		}
		if *relative {
			v = s.Camera.Position.Add(v)
		}
		s.Camera.Position = v
		s.log.Info().Floats32("position", v[:]).Msg("teleported")
		return nil
	})

	reg.Register("save", "", nil, func([]string) error {
		if s.hooks.SaveToggles == nil {
			return errors.New("no preferences file")
		}
		if err := s.hooks.SaveToggles(s.Toggles); err != nil {
			return err
		}
		s.log.Info().Msg("preferences saved")
		return nil
	})

	reg.Register("help", "", nil, func([]string) error {
		for _, line := range reg.Help() {
			s.log.Info().Msg("cmd " + line)
		}
		return nil
	})
}
