package sync

import (
	"path/filepath"
	"strings"
)

// Kind describes what a directory entry becomes on the remote side.
type Kind int

const (
	// Container is a page that holds child pages (a local directory).
	Container Kind = iota

	// TextLeaf is a page filled with paragraph blocks (a recognized text
	// file).
	TextLeaf

	// OpaqueLeaf is a page holding an external-file reference block (any
	// other regular file).
	OpaqueLeaf
)

func (k Kind) String() string {
	switch k {
	case Container:
		return "container"
	case TextLeaf:
		return "text"
	case OpaqueLeaf:
		return "file"
	}
	return "unknown"
}

// Classify decides what kind of page the entry becomes. Extension matching
// is case-insensitive; textExtensions holds lowercased extensions including
// the leading dot.
func Classify(name string, isDir bool, textExtensions map[string]bool) Kind {
	if isDir {
		return Container
	}
	if textExtensions[strings.ToLower(filepath.Ext(name))] {
		return TextLeaf
	}
	return OpaqueLeaf
}
