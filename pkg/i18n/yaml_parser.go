package i18n

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads documents of the form
//
//	en-US:
//	  greeting:
//	    first: Hello and welcome
//	    middle: We appreciate your call today
//	    last: We are here to help
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]Segments, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var data map[string]Segments
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	for locale, segments := range data {
		if strings.TrimSpace(locale) == "" {
			return nil, ErrEmptyLocale
		}
		for key, seg := range segments {
			if !seg.complete() {
				return nil, fmt.Errorf("%w: %s.%s", ErrInvalidSegment, locale, key)
			}
		}
	}
	return data, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
