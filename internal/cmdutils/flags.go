package cmdutils

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func ViperMustBindPFlag(key string, flag *pflag.Flag) {
	err := viper.BindPFlag(key, flag)
	if err != nil {
		panic(err)
	}
}

// AddFlags executes the specified Add*Flag functions and returns a
// function which binds all those flags to viper
func AddFlags(cmd *cobra.Command, funcs ...func(cmd *cobra.Command) func()) (bindFlags func()) { // nolint:nonamedreturns
	var bindFlagFuncs []func()
	for _, f := range funcs {
		bindFlagFunc := f(cmd)
		bindFlagFuncs = append(bindFlagFuncs, bindFlagFunc)
	}
	return func() {
		for _, f := range bindFlagFuncs {
			f()
		}
	}
}

func AddAppNameFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("app-name", "",
		"Name of the application, used in the generated installer script.")
	return func() {
		ViperMustBindPFlag("app-name", cmd.Flags().Lookup("app-name"))
	}
}

func AddAppVersionFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("app-version", "",
		"Semantic `version` of the application, used in the generated installer script.")
	return func() {
		ViperMustBindPFlag("app-version", cmd.Flags().Lookup("app-version"))
	}
}

func AddSystemRootFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("system-root", "",
		"Root `dir` of the target platform runtime tree which contains the\n"+
			"installable shared libraries, theme assets and locales.")
	return func() {
		ViperMustBindPFlag("system-root", cmd.Flags().Lookup("system-root"))
	}
}

func AddDistDirFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("dist-dir", "",
		"The `dir` the distribution tree is staged into. Defaults to \"dist\".")
	return func() {
		ViperMustBindPFlag("dist-dir", cmd.Flags().Lookup("dist-dir"))
	}
}

func AddThemeFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringArray("theme", nil,
		"GUI `theme` to stage from the system root. Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("themes", cmd.Flags().Lookup("theme"))
	}
}

func AddIconThemeFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringArray("icon-theme", nil,
		"Icon `theme` to stage from the system root. Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("icon-themes", cmd.Flags().Lookup("icon-theme"))
	}
}

func AddLocaleFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringArray("locale", nil,
		"Locale `tag` whose translations are staged. Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("locales", cmd.Flags().Lookup("locale"))
	}
}

func AddTextDomainFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringArray("textdomain", nil,
		"Gettext text `domain` whose message catalogs are staged.\n"+
			"Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("textdomains", cmd.Flags().Lookup("textdomain"))
	}
}

func AddExcludeLibFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringArray("exclude-lib", nil,
		"Library `name` excluded from dependency resolution in addition to the\n"+
			"built-in base-OS libraries. Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("exclude-libs", cmd.Flags().Lookup("exclude-lib"))
	}
}

func AddRuntimeArchiveFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("runtime-archive", "",
		"Optional .tar.gz `archive` which is extracted into the system root\n"+
			"before staging.")
	return func() {
		ViperMustBindPFlag("runtime-archive", cmd.Flags().Lookup("runtime-archive"))
	}
}

func AddInstallerTemplateFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("installer-template", "",
		"Path to a custom NSIS installer script `template`. A built-in template\n"+
			"is used when unset.")
	return func() {
		ViperMustBindPFlag("installer-template", cmd.Flags().Lookup("installer-template"))
	}
}

func AddSkipIconCacheFlag(cmd *cobra.Command) func() {
	cmd.Flags().Bool("skip-icon-cache", false,
		"Don't run the icon cache updater on the staged icon themes.")
	return func() {
		ViperMustBindPFlag("skip-icon-cache", cmd.Flags().Lookup("skip-icon-cache"))
	}
}

func AddBuildInstallerFlag(cmd *cobra.Command) func() {
	cmd.Flags().Bool("build-installer", false,
		"Compile the generated installer script with makensis after staging.")
	return func() {
		ViperMustBindPFlag("build-installer", cmd.Flags().Lookup("build-installer"))
	}
}
