package mock

import "github.com/greeenboii/greeenboii"

var _ greeenboii.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of greeenboii.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*greeenboii.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*greeenboii.ExtractResult, error) {
	return e.ExtractFn(html)
}
