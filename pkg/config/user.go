package config

import (
	"path/filepath"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/sidkik/notion-mirror/pkg/errors"
	"github.com/sidkik/notion-mirror/pkg/sync"
)

const (
	// UserConfigPath is the default path to the notion-mirror user config.
	UserConfigPath = "~/.notion-mirror.yaml"

	// InitialUserConfigVersion is the first version of the notion-mirror
	// user config. Config files that do not specify a version
	// will default to this version.
	InitialUserConfigVersion = "v1alpha1"

	// SupportedUserConfigVersion is the supported version of the
	// user config of the current notion-mirror binary.
	SupportedUserConfigVersion = "v1alpha1"
)

// User contains the user's stored defaults for sync runs. The API token is
// deliberately not part of this file -- it only ever comes from the
// environment, so it can't end up committed alongside a dotfiles repo.
type User struct {
	Version string `json:"version,omitempty"`

	// Page is the default destination page ID.
	Page string `json:"page,omitempty"`

	// Folder is the default local folder to mirror.
	Folder string `json:"folder,omitempty"`

	HiddenPrefix     string   `json:"hiddenPrefix,omitempty"`
	TextExtensions   []string `json:"textExtensions,omitempty"`
	MaxChunkLength   int      `json:"maxChunkLength,omitempty"`
	MaxBlocksPerCall int      `json:"maxBlocksPerCall,omitempty"`
}

func (u User) getVersion() string {
	return u.Version
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseUser attempts to parse the User stored in the default path. A missing
// config file is reported as errors.FileNotFound so that callers can fall
// back to the built-in defaults.
func ParseUser() (User, error) {
	path, err := GetUserConfigPath()
	if err != nil {
		return User{}, errors.WithContext(err, "expand config path")
	}

	config := User{Version: InitialUserConfigVersion}
	if err := parseConfig(path, &config, SupportedUserConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return User{}, err
		}
		return User{}, errors.WithContext(err, "parse")
	}

	config.Folder, err = homedir.Expand(config.Folder)
	if err != nil {
		return User{}, errors.WithContext(err, "expand folder path")
	}

	// Evaluate relative paths relative to the config path.
	if config.Folder != "" && !filepath.IsAbs(config.Folder) {
		config.Folder = filepath.Join(filepath.Dir(path), config.Folder)
	}
	return config, nil
}

// WriteUser writes the given user config to disk.
func WriteUser(cfg User) error {
	cfg.Version = SupportedUserConfigVersion
	path, err := GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetUserConfigPath returns the path to the user's global notion-mirror
// configuration. This path is expanded, so it can be directly passed to file
// operations.
func GetUserConfigPath() (string, error) {
	return homedirExpand(UserConfigPath)
}

// SyncOptions converts the stored defaults into engine options, falling back
// to the built-in defaults for any unset field.
func (u User) SyncOptions() sync.Options {
	opts := sync.DefaultOptions()
	if len(u.TextExtensions) > 0 {
		opts.TextExtensions = u.TextExtensions
	}
	if u.HiddenPrefix != "" {
		opts.HiddenPrefix = u.HiddenPrefix
	}
	if u.MaxChunkLength > 0 {
		opts.MaxChunkLength = u.MaxChunkLength
	}
	if u.MaxBlocksPerCall > 0 {
		opts.MaxBlocksPerCall = u.MaxBlocksPerCall
	}
	return opts
}
