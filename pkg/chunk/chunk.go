// Package chunk splits page text into segments that fit Notion's per-block
// length limit, and groups blocks into batches that fit its per-request
// block-count limit. Both limits are enforced by the API, so the sync engine
// must respect them for every append call.
package chunk

import (
	"github.com/sidkik/notion-mirror/pkg/notion"
)

// Split breaks text into consecutive segments of at most maxLen runes each,
// in the original order. Concatenating the result reproduces text exactly.
// Splitting happens on rune boundaries so that a multi-byte character is
// never torn across two blocks. Empty text yields no segments.
func Split(text string, maxLen int) []string {
	if text == "" || maxLen <= 0 {
		return nil
	}

	runes := []rune(text)
	var segments []string
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}

// Group partitions blocks into batches of at most maxPerCall blocks,
// preserving order across batch boundaries. Each batch is submitted to the
// API in a single append call. Zero blocks yield zero batches, so callers
// never issue an empty write.
func Group(blocks []notion.Block, maxPerCall int) [][]notion.Block {
	if len(blocks) == 0 || maxPerCall <= 0 {
		return nil
	}

	var batches [][]notion.Block
	for start := 0; start < len(blocks); start += maxPerCall {
		end := start + maxPerCall
		if end > len(blocks) {
			end = len(blocks)
		}
		batches = append(batches, blocks[start:end])
	}
	return batches
}
