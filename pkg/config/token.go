package config

import (
	"os"

	"github.com/sidkik/notion-mirror/pkg/errors"
)

// TokenEnvKey is the environment variable holding the Notion API token.
const TokenEnvKey = "NOTION_TOKEN"

// Mocked out for unit testing.
var getenv = os.Getenv

// GetToken reads the Notion API token from the environment. A missing token
// is fatal: nothing can be mirrored without authenticating.
func GetToken() (string, error) {
	token := getenv(TokenEnvKey)
	if token == "" {
		return "", errors.NewFriendlyError("The %s environment variable isn't set.\n"+
			"Please create an internal integration at "+
			"https://www.notion.so/my-integrations and export its secret:\n\n"+
			"    export %s=<integration secret>", TokenEnvKey, TokenEnvKey)
	}
	return token, nil
}
