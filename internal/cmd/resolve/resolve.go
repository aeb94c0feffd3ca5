package resolve

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/internal/imports"
	"github.com/winstage/winstage/internal/resolver"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

func New() *cobra.Command {
	var bindFlags func()
	cmd := &cobra.Command{
		Use:   "resolve [flags] <system-root> <binary>",
		Short: "Resolves the shared library closure of a binary",
		Long: `This command discovers every shared library the given binary requires,
excluding libraries which ship with the target operating system, copies
each one from the system root into the binary's directory and repeats
the process for the copied libraries, until the binary's directory
contains the complete closure.

Libraries which already exist next to the binary are left untouched, so
re-running the command on a complete tree performs no work.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind viper keys to flags. We can't do this in the New
			// function, because that would re-bind viper keys which
			// were bound to the flags of other commands before.
			bindFlags()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			systemRoot := args[0]
			subject := args[1]

			exists, err := fileutil.Exists(subject)
			if err != nil {
				return err
			}
			if !exists {
				return cmdutils.WrapIncorrectUsageError(errors.Errorf("binary does not exist: %s", subject))
			}

			r, err := resolver.New(&resolver.Options{
				SystemRoot:   systemRoot,
				Inspector:    imports.NewInspector(),
				ExcludedLibs: viper.GetStringSlice("exclude-libs"),
			})
			if err != nil {
				return err
			}

			log.CreateCurrentProgressSpinner(nil, log.ResolveInProgressMsg)
			err = r.Resolve(subject)
			if err != nil {
				log.StopCurrentProgressSpinner(log.GetPtermErrorStyle(), log.ResolveInProgressErrorMsg)

				var notFoundErr *resolver.DependencyNotFoundError
				if errors.As(err, &notFoundErr) {
					// The bare "<name> not found" diagnostic is part of
					// the command's interface, packaging pipelines grep
					// for it
					log.Error(err, fmt.Sprintf("%s not found", notFoundErr.Name))
					return cmdutils.ErrSilent
				}
				return err
			}

			log.StopCurrentProgressSpinner(log.GetPtermSuccessStyle(), log.ResolveInProgressSuccessMsg)
			log.Successf("Resolved %d shared libraries", len(r.Copied()))
			return nil
		},
	}

	bindFlags = cmdutils.AddFlags(cmd,
		cmdutils.AddExcludeLibFlag,
	)

	return cmd
}
