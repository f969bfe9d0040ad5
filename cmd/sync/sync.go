package sync

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/notion-mirror/cmd/util"
	"github.com/sidkik/notion-mirror/pkg/config"
	"github.com/sidkik/notion-mirror/pkg/errors"
	"github.com/sidkik/notion-mirror/pkg/notion"
	"github.com/sidkik/notion-mirror/pkg/sync"
)

// Mocked for unit testing.
var parseUserConfig = config.ParseUser

// New creates a new `sync` command.
func New() *cobra.Command {
	var page, folder string
	var debug bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror a local folder into a Notion page",
		Long: `Recursively recreate a local folder tree under the given Notion page.
Folders become pages containing their children, text files become pages of
paragraph blocks, and other files become pages holding an external file
reference.

The destination page must already exist and be shared with the integration
whose token is set in ` + config.TokenEnvKey + `.`,
		Run: func(_ *cobra.Command, _ []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}

			if err := run(page, folder); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&page, "page", "",
		"ID of the destination Notion page. "+
			"Defaults to the page in the user config.")
	cmd.Flags().StringVar(&folder, "folder", "",
		"Path to the local folder to mirror. "+
			"Defaults to the folder in the user config.")
	cmd.Flags().BoolVar(&debug, "debug", false,
		"Log per-call diagnostic detail.")
	return cmd
}

func run(page, folder string) error {
	userConfig, err := parseUserConfig()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); !ok {
			return errors.WithContext(err, "parse user config")
		}
		// No config file is fine; flags and defaults cover everything but
		// the token.
		userConfig = config.User{}
	}

	if page == "" {
		page = userConfig.Page
	}
	if folder == "" {
		folder = userConfig.Folder
	}
	if page == "" {
		return errors.NewFriendlyError("No destination page was given. " +
			"Pass --page, or store a default with `notion-mirror config`.")
	}
	if folder == "" {
		return errors.NewFriendlyError("No folder was given. " +
			"Pass --folder, or store a default with `notion-mirror config`.")
	}

	token, err := config.GetToken()
	if err != nil {
		return err
	}

	client, err := notion.New(token, notion.Options{})
	if err != nil {
		return errors.WithContext(err, "create client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnInterrupt(cancel)

	syncer := sync.New(client, userConfig.SyncOptions(), log.StandardLogger())
	if _, err := syncer.Run(ctx, folder, page); err != nil {
		return errors.WithContext(err, "sync")
	}
	return nil
}

// cancelOnInterrupt aborts the walk on the first interrupt. The engine
// checks for cancellation between entries, so the process stops after the
// in-flight call rather than mid-request.
func cancelOnInterrupt(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	log.Info("Interrupted. Stopping after the current entry.")
	cancel()
}
