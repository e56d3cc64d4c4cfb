package mock

import "github.com/greeenboii/greeenboii"

var _ greeenboii.TokenGenerator = (*TokenGenerator)(nil)

// TokenGenerator is a mock implementation of greeenboii.TokenGenerator.
type TokenGenerator struct {
	NextTokenFn func() string
}

func (g *TokenGenerator) NextToken() string {
	return g.NextTokenFn()
}
