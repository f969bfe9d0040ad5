package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/notion-mirror/pkg/notion"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		exp    []string
	}{
		{
			name:   "Empty",
			text:   "",
			maxLen: 5,
			exp:    nil,
		},
		{
			name:   "ShorterThanLimit",
			text:   "abc",
			maxLen: 5,
			exp:    []string{"abc"},
		},
		{
			name:   "ExactMultiple",
			text:   "abcdef",
			maxLen: 3,
			exp:    []string{"abc", "def"},
		},
		{
			name:   "Remainder",
			text:   "abcdefg",
			maxLen: 3,
			exp:    []string{"abc", "def", "g"},
		},
		{
			name:   "SingleRuneSegments",
			text:   "abc",
			maxLen: 1,
			exp:    []string{"a", "b", "c"},
		},
		{
			name: "MultiByteRunesNotTorn",
			// Each rune is multiple bytes; segments must still hold two
			// whole runes each.
			text:   "日本語テキスト",
			maxLen: 2,
			exp:    []string{"日本", "語テ", "キス", "ト"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, Split(test.text, test.maxLen))
		})
	}
}

func TestSplitReconstructsInput(t *testing.T) {
	text := strings.Repeat("0123456789", 350)
	for _, maxLen := range []int{1, 7, 100, 2000, 5000} {
		segments := Split(text, maxLen)
		assert.Equal(t, text, strings.Join(segments, ""))
		for _, segment := range segments {
			assert.True(t, len([]rune(segment)) <= maxLen)
		}

		expCount := (len(text) + maxLen - 1) / maxLen
		assert.Len(t, segments, expCount)
	}
}

func TestGroup(t *testing.T) {
	block := func(text string) notion.Block {
		return notion.Paragraph(text)
	}

	tests := []struct {
		name       string
		blocks     []notion.Block
		maxPerCall int
		exp        [][]notion.Block
	}{
		{
			name:       "Empty",
			blocks:     nil,
			maxPerCall: 3,
			exp:        nil,
		},
		{
			name:       "OneBatch",
			blocks:     []notion.Block{block("a"), block("b")},
			maxPerCall: 3,
			exp:        [][]notion.Block{{block("a"), block("b")}},
		},
		{
			name:       "ExactMultiple",
			blocks:     []notion.Block{block("a"), block("b"), block("c"), block("d")},
			maxPerCall: 2,
			exp: [][]notion.Block{
				{block("a"), block("b")},
				{block("c"), block("d")},
			},
		},
		{
			name:       "Remainder",
			blocks:     []notion.Block{block("a"), block("b"), block("c")},
			maxPerCall: 2,
			exp: [][]notion.Block{
				{block("a"), block("b")},
				{block("c")},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, Group(test.blocks, test.maxPerCall))
		})
	}
}

func TestGroupPreservesOrder(t *testing.T) {
	var blocks []notion.Block
	for _, text := range Split(strings.Repeat("x", 100), 1) {
		blocks = append(blocks, notion.Paragraph(text))
	}

	batches := Group(blocks, 7)
	assert.Len(t, batches, 15)

	var flattened []notion.Block
	for _, batch := range batches {
		assert.True(t, len(batch) <= 7)
		flattened = append(flattened, batch...)
	}
	assert.Equal(t, blocks, flattened)
}
