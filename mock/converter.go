package mock

import "github.com/greeenboii/greeenboii"

var _ greeenboii.Converter = (*Converter)(nil)

// Converter is a mock implementation of greeenboii.Converter.
type Converter struct {
	ConvertFn func(html, baseURL string) (string, error)
}

func (c *Converter) Convert(html, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}
