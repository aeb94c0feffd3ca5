package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

// ProjectConfigFile is the name of the project configuration file,
// searched for upwards from the working directory.
const ProjectConfigFile = "winstage.yaml"

const envPrefix = "WINSTAGE"

// FindProjectDir returns the directory containing the project
// configuration file, walking upwards from the current working
// directory. Returns os.ErrNotExist when no configuration file was
// found.
func FindProjectDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}
	configPath, err := fileutil.SearchFileBackwards(cwd, ProjectConfigFile)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// FindAndParseProjectConfig locates winstage.yaml and unmarshals it
// (plus WINSTAGE_* environment variables and any flags already bound
// to viper) into opts. A missing configuration file is not an error,
// in that case only flags and environment variables apply.
func FindAndParseProjectConfig(opts interface{}) error {
	projectDir, err := FindProjectDir()
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("No %s found, using flags and environment only", ProjectConfigFile)
		return parse(opts)
	}
	if err != nil {
		return err
	}
	return ParseProjectConfig(projectDir, opts)
}

// ParseProjectConfig parses the configuration file in projectDir into
// opts.
func ParseProjectConfig(projectDir string, opts interface{}) error {
	configPath := filepath.Join(projectDir, ProjectConfigFile)
	viper.SetConfigFile(configPath)
	err := viper.ReadInConfig()
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", configPath)
	}
	return parse(opts)
}

func parse(opts interface{}) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	err := viper.Unmarshal(opts)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
