package cmdutils

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
)

// ExecuteCommand executes the given command with the given args and
// input and returns the combined command output.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, in io.Reader, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(in)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
