package splitter

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the fixed BPE vocabulary backing all token accounting.
const encodingName = "cl100k_base"

// The encoding tables are expensive to build, so they are constructed once
// and shared read-only for the process lifetime. There is no write API.
var sharedEncoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding(encodingName)
})

// CountTokens measures text against the shared vocabulary. Special token
// text is counted like any other input.
func CountTokens(text string) (int, error) {
	enc, err := sharedEncoding()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, []string{"all"}, nil)), nil
}
