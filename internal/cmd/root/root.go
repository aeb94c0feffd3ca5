package root

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/winstage/winstage/internal/cmd/resolve"
	"github.com/winstage/winstage/internal/cmd/stage"
	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/pkg/log"
)

func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "winstage",
		Short: "winstage stages desktop applications for Windows distribution",
		Long: `winstage packages a desktop application for distribution on Windows:
it stages the binary, its complete shared library closure, GUI theme
assets and localized strings into a self-contained distribution tree
and generates an installer script for it.`,
		// We are using our custom ErrSilent instead to support a
		// custom error handling
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more verbose output")
	cmdutils.ViperMustBindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(resolve.New())
	rootCmd.AddCommand(stage.New())

	return rootCmd
}

func Execute() {
	cmd, err := New().ExecuteC()
	if err != nil {
		if errors.Is(err, cmdutils.ErrSilent) {
			// The error was already printed where it occurred
			os.Exit(1)
		}

		log.Error(err)
		if errors.Is(err, cmdutils.ErrIncorrectUsage) {
			log.Print(cmd.UsageString())
		}
		os.Exit(1)
	}
}
