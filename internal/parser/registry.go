package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Registry routes extensions and MIME types to parsers registered at
// startup. The first registration for a key wins, so specialized parsers
// (local PDF) should be registered before broader ones (remote OCR).
type Registry struct {
	byExt  map[string]Parser
	byMIME map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{
		byExt:  make(map[string]Parser),
		byMIME: make(map[string]Parser),
	}
}

// Register adds a parser under all of its declared extensions and MIME types.
func (r *Registry) Register(p Parser) {
	for _, ext := range p.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if _, taken := r.byExt[ext]; !taken {
			r.byExt[ext] = p
		}
	}
	for _, mt := range p.SupportedMIMETypes() {
		mt = strings.ToLower(mt)
		if _, taken := r.byMIME[mt]; !taken {
			r.byMIME[mt] = p
		}
	}
}

// ForExtension returns the parser registered for a file extension. A leading
// dot and mixed case are tolerated.
func (r *Registry) ForExtension(ext string) (Parser, error) {
	key := strings.ToLower(strings.TrimPrefix(ext, "."))
	if p, ok := r.byExt[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// ForMIMEType returns the parser registered for a MIME type. Parameters such
// as charset are ignored.
func (r *Registry) ForMIMEType(mimeType string) (Parser, error) {
	key := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(key, ';'); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if p, ok := r.byMIME[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: mime type %q", ErrUnsupportedFormat, mimeType)
}

// Formats returns the sorted union of registered extensions and MIME types,
// for the discovery endpoint.
func (r *Registry) Formats() (extensions, mimeTypes []string) {
	for ext := range r.byExt {
		extensions = append(extensions, ext)
	}
	for mt := range r.byMIME {
		mimeTypes = append(mimeTypes, mt)
	}
	sort.Strings(extensions)
	sort.Strings(mimeTypes)
	return extensions, mimeTypes
}
