package document

// Page is a unit of extracted text with a 1-based ordinal position in the
// source document. Pages are created by a parser and never mutated afterward.
type Page struct {
	PageNum uint    `json:"page_num"`
	Text    string  `json:"text"`
	Images  []Image `json:"images,omitempty"`
}

// Image is an embedded image owned by its Page. Local parsers leave this
// empty; the field is reserved for backends that return image regions.
type Image struct {
	ID          string `json:"id"`
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// Chunk is a bounded span of concatenated sentences, sized in tokens for
// downstream embedding. TokenCount is the tokenizer's measurement of Text at
// creation time and CharCount is len(Text).
type Chunk struct {
	ID         string `json:"id"`
	PageNum    uint   `json:"page_num"`
	Text       string `json:"text"`
	TokenCount int    `json:"token_count"`
	CharCount  int    `json:"char_count"`
}
