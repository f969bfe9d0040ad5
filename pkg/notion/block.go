package notion

// Block is one unit of page content in the API's wire format. Exactly one of
// the type-specific bodies is set, matching the Type field.
type Block struct {
	Object    string         `json:"object"`
	Type      string         `json:"type"`
	Paragraph *paragraphBody `json:"paragraph,omitempty"`
	File      *fileBody      `json:"file,omitempty"`
}

type paragraphBody struct {
	RichText []richText `json:"rich_text"`
}

type richText struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type fileBody struct {
	Type     string       `json:"type"`
	External externalFile `json:"external"`
}

type externalFile struct {
	URL string `json:"url"`
}

// Paragraph returns a paragraph block holding the given text. The text must
// already fit within the API's per-block length limit.
func Paragraph(text string) Block {
	return Block{
		Object: "block",
		Type:   "paragraph",
		Paragraph: &paragraphBody{
			RichText: []richText{{
				Type: "text",
				Text: textContent{Content: text},
			}},
		},
	}
}

// ExternalFile returns a file block pointing at an externally hosted URL.
func ExternalFile(url string) Block {
	return Block{
		Object: "block",
		Type:   "file",
		File: &fileBody{
			Type:     "external",
			External: externalFile{URL: url},
		},
	}
}

// Text returns the paragraph text of the block, or "" for non-paragraph
// blocks. It's primarily useful for logging and tests.
func (b Block) Text() string {
	if b.Paragraph == nil || len(b.Paragraph.RichText) == 0 {
		return ""
	}
	return b.Paragraph.RichText[0].Text.Content
}
