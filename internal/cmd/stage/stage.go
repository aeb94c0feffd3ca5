package stage

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/internal/config"
	"github.com/winstage/winstage/internal/stager"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

type options struct {
	stager.Opts `mapstructure:",squash"`
}

func New() *cobra.Command {
	return newWithOptions(&options{})
}

func newWithOptions(opts *options) *cobra.Command {
	var bindFlags func()
	cmd := &cobra.Command{
		Use:   "stage [flags] <binary>",
		Short: "Stages a self-contained distribution tree for a binary",
		Long: `This command stages everything the given binary needs at runtime into a
distribution directory: the binary itself, its transitive shared
library closure from the system root, the configured GUI themes and
icon themes, the message catalogs of the configured locales, a GTK
settings file selecting the staged themes, and an NSIS installer
script for the finished tree.

Settings are read from winstage.yaml (searched upwards from the
working directory), WINSTAGE_* environment variables and flags, in
increasing order of precedence.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind viper keys to flags. We can't do this in the New
			// function, because that would re-bind viper keys which
			// were bound to the flags of other commands before.
			bindFlags()

			err := config.FindAndParseProjectConfig(opts)
			if err != nil {
				log.Errorf(err, "Failed to parse %s: %v", config.ProjectConfigFile, err.Error())
				return cmdutils.WrapSilentError(err)
			}

			opts.Binary = args[0]
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log.CreateCurrentProgressSpinner(nil, log.StageInProgressMsg)

			err := stager.New(&opts.Opts).Stage()
			if err != nil {
				log.StopCurrentProgressSpinner(log.GetPtermErrorStyle(), log.StageInProgressErrorMsg)

				var execErr *cmdutils.ExecError
				if errors.As(err, &execErr) {
					// It is expected that some commands might fail due to user
					// configuration so we print the error without the stack trace
					// (in non-verbose mode) and silence it
					log.Error(err)
					return cmdutils.ErrSilent
				}

				return err
			}

			log.StopCurrentProgressSpinner(log.GetPtermSuccessStyle(), log.StageInProgressSuccessMsg)
			log.Successf("Successfully staged %s", fileutil.PrettifyPath(opts.DistDir))
			return nil
		},
	}

	bindFlags = cmdutils.AddFlags(cmd,
		cmdutils.AddAppNameFlag,
		cmdutils.AddAppVersionFlag,
		cmdutils.AddSystemRootFlag,
		cmdutils.AddDistDirFlag,
		cmdutils.AddThemeFlag,
		cmdutils.AddIconThemeFlag,
		cmdutils.AddLocaleFlag,
		cmdutils.AddTextDomainFlag,
		cmdutils.AddExcludeLibFlag,
		cmdutils.AddRuntimeArchiveFlag,
		cmdutils.AddInstallerTemplateFlag,
		cmdutils.AddSkipIconCacheFlag,
		cmdutils.AddBuildInstallerFlag,
	)
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Output path of the distribution archive (.tar.gz)")

	return cmd
}
