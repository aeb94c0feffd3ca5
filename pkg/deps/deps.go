// Package deps checks that the external tools the staging pipeline
// shells out to are installed in suitable versions.
package deps

import (
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/executil"
)

var ErrDeps = errors.New("unable to run command due to missing/invalid dependencies")

type Key string

const (
	MakeNSIS        Key = "makensis"
	IconCacheUpdate Key = "gtk-update-icon-cache"

	MessageVersion = "winstage requires %s %s or higher, have %s"
	MessageMissing = "winstage requires %s, but it is not installed"
)

// Dependency represents a single external tool dependency
type Dependency struct {
	Key        Key
	MinVersion semver.Version
	// these fields are used to implement custom logic to
	// retrieve version or installation information for the
	// specific dependency
	GetVersion func(*Dependency) (*semver.Version, error)
	Installed  func(*Dependency) bool
}

var deps = map[Key]*Dependency{
	MakeNSIS: {
		Key:        MakeNSIS,
		MinVersion: *semver.MustParse("3.0.0"),
		GetVersion: makensisVersion,
		Installed: func(dep *Dependency) bool {
			return installedInPath(dep)
		},
	},
	IconCacheUpdate: {
		Key: IconCacheUpdate,
		// gtk-update-icon-cache works the same in every GTK 3 release
		MinVersion: *semver.MustParse("0.0.0"),
		GetVersion: func(dep *Dependency) (*semver.Version, error) {
			return semver.NewVersion("0.0.0")
		},
		Installed: func(dep *Dependency) bool {
			return installedInPath(dep)
		},
	},
}

func installedInPath(dep *Dependency) bool {
	_, err := exec.LookPath(string(dep.Key))
	return err == nil
}

// Compares MinVersion against GetVersion
func (dep *Dependency) checkVersion() bool {
	currentVersion, err := dep.GetVersion(dep)
	if err != nil {
		log.Warnf("Unable to get current version for %s, message: %v", dep.Key, err)
		// we want to be lenient if we were not able to extract the version
		return true
	}

	if currentVersion.Compare(&dep.MinVersion) == -1 {
		log.Warnf(MessageVersion, dep.Key, dep.MinVersion.String(), currentVersion.String())
		return false
	}
	return true
}

// Check iterates over a list of dependencies and checks if they are
// fulfilled
func Check(keys []Key) error {
	allFine := true
	for _, key := range keys {
		dep, found := deps[key]
		if !found {
			panic(fmt.Sprintf("Undefined dependency %s", key))
		}

		if !dep.Installed(dep) {
			log.Warnf(MessageMissing, dep.Key)
			allFine = false
			continue
		}

		if dep.MinVersion.Equal(semver.MustParse("0.0.0")) {
			log.Debugf("Checking dependency: %s", dep.Key)
		} else {
			log.Debugf("Checking dependency: %s version >= %s", dep.Key, dep.MinVersion.String())
		}

		if !dep.checkVersion() {
			allFine = false
		}
	}

	if !allFine {
		return ErrDeps
	}
	return nil
}

// Installed returns whether the tool is available without enforcing a
// minimum version, for optional pipeline steps.
func Installed(key Key) bool {
	dep, found := deps[key]
	if !found {
		panic(fmt.Sprintf("Undefined dependency %s", key))
	}
	return dep.Installed(dep)
}

// Note: the patch part is optional to be lenient when a tool reports
// something like v3.0 instead of v3.0.0
var makensisRegex = regexp.MustCompile(`(?m)v(?P<version>\d+\.\d+(\.\d+)?)`)

func makensisVersion(dep *Dependency) (*semver.Version, error) {
	path, err := exec.LookPath(string(dep.Key))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out, err := executil.Command(path, "-VERSION").Output()
	if err != nil {
		return nil, err
	}

	match := makensisRegex.FindStringSubmatch(string(out))
	if match == nil {
		return nil, errors.Errorf("no version found in output: %s", string(out))
	}
	version, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return version, nil
}
