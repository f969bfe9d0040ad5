package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/sidkik/notion-mirror/pkg/errors"
)

// badConfigTemplate is shown when the user config can't be parsed. The yaml
// library's errors lose most of their context, so all we can do is name the
// file and relay the parser's message.
const badConfigTemplate = "Couldn't parse the config file at %q.\n" +
	"Check that every field has the right type and that there are no fields\n" +
	"this version of notion-mirror doesn't know about.\n\n" +
	"The parser reported:\n%s"

// versioned is implemented by config structs that carry a version field, so
// parseConfig can reject files written for another binary version.
type versioned interface {
	getVersion() string
}

type wrongVersionError struct {
	path, exp, actual string
}

func (err wrongVersionError) Error() string {
	return err.FriendlyMessage()
}

func (err wrongVersionError) FriendlyMessage() string {
	return fmt.Sprintf("The config file %q was written for a different "+
		"version of notion-mirror (version %q, this binary supports %q).\n"+
		"Re-run `notion-mirror config` to regenerate it.",
		err.path, err.actual, err.exp)
}

func parseConfig(path string, config versioned, expVersion string) error {
	configBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.FileNotFound{Path: path}
		}
		return errors.WithContext(err, "read file")
	}

	// Parse leniently first so that a version mismatch is reported as such,
	// rather than as whatever field happens to differ between versions.
	if err := yaml.Unmarshal(configBytes, config); err != nil {
		return errors.NewFriendlyError(badConfigTemplate, path, err)
	}
	if config.getVersion() != expVersion {
		return wrongVersionError{path, expVersion, config.getVersion()}
	}

	// Then re-parse strictly so typos in field names don't get silently
	// ignored.
	err = yaml.UnmarshalStrict(configBytes, config, yaml.DisallowUnknownFields)
	if err != nil {
		return errors.NewFriendlyError(badConfigTemplate, path, err)
	}
	return nil
}
