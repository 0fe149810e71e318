package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/9600org/dawsync"
	"github.com/9600org/dawsync/surface"
	"github.com/chzyer/readline"
)

const consoleHelp = `Commands:
  press <control>       press and release a button, e.g. "press enter"
  hold <control>        press a button without releasing it
  release <control>     release a held button
  turn <knob> <ticks>   turn a knob, e.g. "turn knob1 -3"
  touch <knob>          touch a knob
  untouch <knob>        stop touching a knob
  mode <mode>           switch to track, device, browser or clip mode
  refresh               resend all state on the next tick
  status                show the surface and mode
  quit                  exit
`

// consoleEvents parses a console line into the control events it stands for.
func consoleEvents(cmd string, args []string) ([]surface.Event, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%s needs a control", cmd)
	}
	c, err := surface.ParseControl(args[0])
	if err != nil {
		return nil, err
	}
	_, isKnob := c.KnobIndex()

	switch cmd {
	case "press":
		return []surface.Event{{Control: c, Kind: surface.Down}, {Control: c, Kind: surface.Up}}, nil
	case "hold":
		return []surface.Event{{Control: c, Kind: surface.Down}}, nil
	case "release":
		return []surface.Event{{Control: c, Kind: surface.Up}}, nil
	case "turn":
		if !isKnob {
			return nil, fmt.Errorf("%s is not a knob", c)
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("turn needs a knob and a number of ticks")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid ticks %q", args[1])
		}
		return []surface.Event{{Control: c, Kind: surface.Delta, Value: n}}, nil
	case "touch", "untouch":
		if !isKnob {
			return nil, fmt.Errorf("%s is not a knob", c)
		}
		kind := surface.TouchStart
		if cmd == "untouch" {
			kind = surface.TouchEnd
		}
		return []surface.Event{{Control: c, Kind: kind}}, nil
	}
	return nil, fmt.Errorf("unknown command %q", cmd)
}

// console reads commands from the terminal and applies them to the server.
type console struct {
	rl     *readline.Instance
	server *dawsync.Server
}

func newConsole(s *dawsync.Server) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dawsync> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{rl: rl, server: s}, nil
}

// Run reads commands until the user quits or ctx is done, then calls cancel.
func (c *console) Run(ctx context.Context, cancel context.CancelFunc) error {
	defer c.rl.Close()
	defer cancel()

	out := c.rl.Stdout()
	fmt.Fprint(out, consoleHelp)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		switch cmd {
		case "help", "?":
			fmt.Fprint(out, consoleHelp)
		case "quit", "exit":
			return nil
		case "refresh":
			c.server.Refresh()
		case "status":
			st := c.server.Status()
			fmt.Fprintf(out, "%s in %s mode, %d values tracked\n", st.Surface, st.Mode, len(st.Values))
		case "mode":
			if len(args) != 1 {
				fmt.Fprintln(out, "mode needs a mode name")
				continue
			}
			m, err := surface.ParseMode(args[0])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			c.server.SetMode(m)
		default:
			evs, err := consoleEvents(cmd, args)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			for _, ev := range evs {
				c.server.HandleEvent(ev)
			}
		}
	}
}
