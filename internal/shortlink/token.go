package shortlink

import "github.com/jaevor/go-nanoid"

// DefaultTokenLength is the length of generated tokens. At 8 characters
// over a 64-symbol alphabet the collision probability is negligible;
// the store's unique constraint catches the rest.
const DefaultTokenLength = 8

// Generator produces tokens for new links.
type Generator struct {
	generate func() string
}

// NewGenerator creates a token generator producing random URL-safe
// tokens (letters, digits, '-' and '_') of the given length.
func NewGenerator(length int) (*Generator, error) {
	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, err
	}

	return &Generator{generate: gen}, nil
}

// Generate returns the alias verbatim when one is given, otherwise a
// fresh random token. Uniqueness of aliases is enforced at insert time.
func (g *Generator) Generate(alias string) Token {
	if alias != "" {
		return Token(alias)
	}

	return Token(g.generate())
}
