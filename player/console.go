package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Console reads moves from an interactive terminal with line editing and
// history. Ctrl-C on an empty line and Ctrl-D end the input with io.EOF.
type Console struct {
	l *readline.Instance
}

func NewConsole() (*Console, error) {
	l, err := readline.NewEx(&readline.Config{
		HistoryFile:       "/tmp/wargame-moves.tmp",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open the console: %w", err)
	}
	return &Console{l: l}, nil
}

func (c *Console) ReadMove(prompt string) (string, error) {
	c.l.SetPrompt(prompt)
	for {
		line, err := c.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return "", io.EOF
			}
			continue
		} else if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) Close() error {
	return c.l.Close()
}
