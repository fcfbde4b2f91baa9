package splitter

import (
	"fmt"
	"strings"

	"ingestd/internal/document"

	"github.com/pkoukk/tiktoken-go"
)

// SentenceSplitter assembles token-bounded chunks from page sentences.
// Budget enforcement is best-effort, subordinate to sentence integrity: a
// chunk boundary never falls inside a sentence, so a single sentence larger
// than the budget still becomes one (oversized) chunk.
type SentenceSplitter struct {
	maxTokens     int
	overlapTokens int
	enc           *tiktoken.Tiktoken
}

// NewSentenceSplitter validates the chunking parameters up front; the
// splitter itself never fails afterward. maxTokens must be positive (it
// divides the overlap arithmetic) and overlapPercent is the share of
// maxTokens carried between consecutive chunks.
func NewSentenceSplitter(maxTokens, overlapPercent int) (*SentenceSplitter, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	if overlapPercent < 0 || overlapPercent > 100 {
		return nil, fmt.Errorf("overlap percent must be between 0 and 100, got %d", overlapPercent)
	}
	enc, err := sharedEncoding()
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", encodingName, err)
	}
	return &SentenceSplitter{
		maxTokens:     maxTokens,
		overlapTokens: maxTokens * overlapPercent / 100,
		enc:           enc,
	}, nil
}

// Split chunks each page independently: no chunk or overlap tail ever
// crosses a page boundary.
func (s *SentenceSplitter) Split(pages []document.Page) []document.Chunk {
	var chunks []document.Chunk
	for _, page := range pages {
		chunks = append(chunks, s.splitPage(page)...)
	}
	return chunks
}

func (s *SentenceSplitter) splitPage(page document.Page) []document.Chunk {
	var chunks []document.Chunk
	var current strings.Builder
	currentTokens := 0

	for _, sentence := range SplitSentences(page.Text) {
		sentenceTokens := s.countTokens(sentence)

		// Close the chunk only when something is already buffered; a lone
		// over-budget sentence stays whole.
		if currentTokens+sentenceTokens > s.maxTokens && current.Len() > 0 {
			chunks = append(chunks, s.newChunk(page.PageNum, current.String()))

			seed := s.overlapTail(current.String())
			current.Reset()
			current.WriteString(seed)
			currentTokens = s.countTokens(seed)
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
		currentTokens += sentenceTokens
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, s.newChunk(page.PageNum, current.String()))
	}
	return chunks
}

// overlapTail returns the trailing words of a closed chunk that seed the
// next one. The word count is a proxy for the token budget:
// words * overlapTokens / maxTokens, retained verbatim.
func (s *SentenceSplitter) overlapTail(text string) string {
	words := strings.Fields(text)
	keep := len(words) * s.overlapTokens / s.maxTokens
	if keep == 0 {
		return ""
	}
	return strings.Join(words[len(words)-keep:], " ")
}

func (s *SentenceSplitter) newChunk(pageNum uint, text string) document.Chunk {
	text = strings.TrimSpace(text)
	return document.Chunk{
		ID:         document.NewID(),
		PageNum:    pageNum,
		Text:       text,
		TokenCount: s.countTokens(text),
		CharCount:  len(text),
	}
}

func (s *SentenceSplitter) countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(s.enc.Encode(text, []string{"all"}, nil))
}
