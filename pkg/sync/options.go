package sync

// Defaults for the tunable parts of the sync. The chunk and batch limits
// come from the Notion API: blocks hold at most 2000 characters of rich
// text, and append calls accept at most 100 blocks (we stay well below
// that). The extension set is domain knowledge, not law, so all of these
// can be overridden via the user config.
const (
	DefaultMaxChunkLength   = 2000
	DefaultMaxBlocksPerCall = 50
	DefaultHiddenPrefix     = "."

	// DefaultExternalURLBase is the placeholder scheme for opaque files.
	// Real binary upload is deliberately out of scope, so the reference
	// block points at a derived pseudo-URL rather than a hosted copy.
	DefaultExternalURLBase = "https://example.com/files"
)

// DefaultTextExtensions are the file extensions synced as text pages.
var DefaultTextExtensions = []string{".txt", ".md", ".doc", ".rtf"}

// Options holds the tunable parts of a sync run.
type Options struct {
	// TextExtensions lists the extensions treated as text files. Matching
	// is case-insensitive.
	TextExtensions []string

	// HiddenPrefix marks entries to skip entirely (dotfiles by default).
	HiddenPrefix string

	// MaxChunkLength bounds the length of a single paragraph block.
	MaxChunkLength int

	// MaxBlocksPerCall bounds the number of blocks sent in one append call.
	MaxBlocksPerCall int

	// ExternalURLBase is the URL prefix for opaque-file reference blocks.
	ExternalURLBase string
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		TextExtensions:   DefaultTextExtensions,
		HiddenPrefix:     DefaultHiddenPrefix,
		MaxChunkLength:   DefaultMaxChunkLength,
		MaxBlocksPerCall: DefaultMaxBlocksPerCall,
		ExternalURLBase:  DefaultExternalURLBase,
	}
}
