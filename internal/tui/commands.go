package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/element-mixer/internal/models"
)

type commandKind int

const (
	cmdPlace commandKind = iota
	cmdMix
	cmdCombine
	cmdMove
	cmdRemove
	cmdClear
	cmdUndo
	cmdReset
	cmdMode
	cmdHelp
	cmdQuit
)

type command struct {
	kind      commandKind
	names     []string
	indices   []int
	x, y      float64
	hasPos    bool
	energized bool
	mode      models.GameMode
}

const helpText = `place <element> [x y]   put an element in the workspace
mix <#a> <#b>           mix two workspace tokens
combine A + B [+ C]     mix discovered elements directly; end with ! to energize
move <#> <x> <y>        drag a token
remove <#> | clear      take tokens out of the workspace
undo | reset | mode science|creative | quit`

// parseCommand turns one line of player input into a command. A leading "/"
// is optional.
func parseCommand(input string) (command, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	verb, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)

	switch strings.ToLower(verb) {
	case "place", "p":
		if rest == "" {
			return command{}, fmt.Errorf("usage: place <element> [x y]")
		}
		c := command{kind: cmdPlace}
		if n := len(fields); n >= 3 {
			x, errX := strconv.ParseFloat(fields[n-2], 64)
			y, errY := strconv.ParseFloat(fields[n-1], 64)
			if errX == nil && errY == nil {
				c.x, c.y, c.hasPos = x, y, true
				fields = fields[:n-2]
			}
		}
		c.names = []string{strings.Join(fields, " ")}
		return c, nil

	case "mix", "m":
		indices, err := parseIndices(fields, 2)
		if err != nil {
			return command{}, fmt.Errorf("usage: mix <#a> <#b>")
		}
		return command{kind: cmdMix, indices: indices}, nil

	case "combine", "c":
		c := command{kind: cmdCombine}
		if strings.HasSuffix(rest, "!") {
			c.energized = true
			rest = strings.TrimSuffix(rest, "!")
		}
		for _, name := range strings.Split(rest, "+") {
			if name = strings.TrimSpace(name); name != "" {
				c.names = append(c.names, name)
			}
		}
		if len(c.names) < 2 || len(c.names) > 3 {
			return command{}, fmt.Errorf("usage: combine A + B [+ C]")
		}
		return c, nil

	case "move":
		if len(fields) != 3 {
			return command{}, fmt.Errorf("usage: move <#> <x> <y>")
		}
		idx, err := parseIndices(fields[:1], 1)
		if err != nil {
			return command{}, err
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil {
			return command{}, fmt.Errorf("usage: move <#> <x> <y>")
		}
		return command{kind: cmdMove, indices: idx, x: x, y: y, hasPos: true}, nil

	case "remove", "rm":
		idx, err := parseIndices(fields, 1)
		if err != nil {
			return command{}, fmt.Errorf("usage: remove <#>")
		}
		return command{kind: cmdRemove, indices: idx}, nil

	case "clear":
		return command{kind: cmdClear}, nil
	case "undo", "u":
		return command{kind: cmdUndo}, nil
	case "reset", "restart":
		return command{kind: cmdReset}, nil
	case "mode":
		mode := models.GameMode(strings.ToLower(rest))
		if !mode.Valid() {
			return command{}, fmt.Errorf("usage: mode science|creative")
		}
		return command{kind: cmdMode, mode: mode}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	}
	return command{}, fmt.Errorf("unknown command %q, try help", verb)
}

func parseIndices(fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d token numbers", n)
	}
	out := make([]int, n)
	for i, f := range fields {
		idx, err := strconv.Atoi(strings.TrimPrefix(f, "#"))
		if err != nil {
			return nil, fmt.Errorf("bad token number %q", f)
		}
		out[i] = idx
	}
	return out, nil
}
