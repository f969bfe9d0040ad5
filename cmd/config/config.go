package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/notion-mirror/cmd/util"
	"github.com/sidkik/notion-mirror/pkg/config"
	"github.com/sidkik/notion-mirror/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	parseUserConfig           = config.ParseUser
	writeUserConfig           = config.WriteUser
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.User
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Store default settings for notion-mirror",
		Long: "Write the notion-mirror user config. Stored values are used as\n" +
			"defaults by `notion-mirror sync` when the corresponding flag isn't given.\n" +
			"The " + config.TokenEnvKey + " token is never written to disk.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := setupConfig(cliOpts); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.Page, "page", "",
		"Set the default destination page ID in the config.")
	cmd.Flags().StringVar(&cliOpts.Folder, "folder", "",
		"Set the default local folder in the config.")
	cmd.Flags().StringVar(&cliOpts.HiddenPrefix, "hidden-prefix", "",
		"Set the filename prefix that marks entries as hidden.")
	cmd.Flags().StringSliceVar(&cliOpts.TextExtensions, "text-extensions", nil,
		"Set the file extensions synced as text pages (e.g. .txt,.md).")
	cmd.Flags().IntVar(&cliOpts.MaxChunkLength, "max-chunk-length", 0,
		"Set the maximum characters per paragraph block.")
	cmd.Flags().IntVar(&cliOpts.MaxBlocksPerCall, "max-blocks-per-call", 0,
		"Set the maximum blocks sent in one append call.")

	// Setup the commands for querying the contents of the user config.
	type getterSpec struct {
		use, short string
		fn         func(config.User) string
	}

	getters := []getterSpec{
		{
			use:   "get-page",
			short: "Get the currently configured destination page ID",
			fn:    func(cfg config.User) string { return cfg.Page },
		},
		{
			use:   "get-folder",
			short: "Get the currently configured local folder",
			fn:    func(cfg config.User) string { return cfg.Folder },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Run: func(_ *cobra.Command, _ []string) {
				cfg, err := parseUserConfig()
				if err != nil {
					err = errors.WithContext(err, "read config")
					util.HandleFatalError(err)
				}

				fmt.Fprintln(stdout, getter.fn(cfg))
			},
		})
	}

	return cmd
}

// setupConfig merges the flag values over the existing config, so that
// setting one field doesn't wipe the others.
func setupConfig(cliOpts config.User) error {
	cfg, err := parseUserConfig()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); !ok {
			return errors.WithContext(err, "read existing config")
		}
		cfg = config.User{}
	}

	if cliOpts.Page != "" {
		cfg.Page = cliOpts.Page
	}
	if cliOpts.Folder != "" {
		cfg.Folder = cliOpts.Folder
	}
	if cliOpts.HiddenPrefix != "" {
		cfg.HiddenPrefix = cliOpts.HiddenPrefix
	}
	if len(cliOpts.TextExtensions) > 0 {
		cfg.TextExtensions = cliOpts.TextExtensions
	}
	if cliOpts.MaxChunkLength != 0 {
		cfg.MaxChunkLength = cliOpts.MaxChunkLength
	}
	if cliOpts.MaxBlocksPerCall != 0 {
		cfg.MaxBlocksPerCall = cliOpts.MaxBlocksPerCall
	}

	if err := writeUserConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := config.GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "get user config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}
