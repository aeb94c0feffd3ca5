package executil

import (
	"os/exec"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"

	"github.com/winstage/winstage/pkg/log"
)

// Cmd provides the same functionality as exec.Cmd but logs the full
// command line before running it, so that failing external tool
// invocations can be reproduced by hand.
type Cmd struct {
	*exec.Cmd
}

func Command(name string, arg ...string) *Cmd {
	return &Cmd{Cmd: exec.Command(name, arg...)}
}

// QuotedCommand returns the command line in shell-quoted form.
func (c *Cmd) QuotedCommand() string {
	return shellescape.QuoteCommand(c.Args)
}

func (c *Cmd) Run() error {
	log.Debugf("Command: %s", c.QuotedCommand())
	err := c.Cmd.Run()
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (c *Cmd) Output() ([]byte, error) {
	log.Debugf("Command: %s", c.QuotedCommand())
	out, err := c.Cmd.Output()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}
