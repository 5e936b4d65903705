// Package tiktokencounter measures token counts locally with a tiktoken
// vocabulary. Counts are deterministic and offline, which makes them the
// independent cross-check for the remote endpoint's reported figures; the
// two sources are never assumed numerically equal.
package tiktokencounter

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

// DefaultEncoding is the vocabulary used when a model has no known tokenizer
// match.
const DefaultEncoding = "o200k_base"

type Counter struct {
	enc  *tiktoken.Tiktoken
	name string
}

// ForModel selects the encoding by best-effort model-family match, falling
// back to the given encoding (or DefaultEncoding) when the model is unknown
// to the vocabulary tables.
func ForModel(model, fallbackEncoding string) (*Counter, error) {
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return &Counter{enc: enc, name: encodingNameForModel(model)}, nil
	}

	name := fallbackEncoding
	if name == "" {
		name = DefaultEncoding
	}
	return ForEncoding(name)
}

// ForEncoding loads a vocabulary by its encoding identifier.
func ForEncoding(name string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "tiktokencounter.load",
			Kind: domain.KindInvalidConfig,
			Hint: fmt.Sprintf("use a known tiktoken encoding (e.g. %q)", DefaultEncoding),
			Err:  fmt.Errorf("encoding %q: %w", name, err),
		}
	}
	return &Counter{enc: enc, name: name}, nil
}

var _ ports.LocalTokenCounter = (*Counter)(nil)

func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

func (c *Counter) EncodingName() string {
	return c.name
}

// encodingNameForModel resolves the display name of a model's encoding
// through the library's model tables; counting itself goes through the
// encoder picked by EncodingForModel.
func encodingNameForModel(model string) string {
	if enc, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return enc
	}
	for prefix, enc := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(model, prefix) {
			return enc
		}
	}
	return model
}
