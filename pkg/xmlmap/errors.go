package xmlmap

import "errors"

var (
	ErrEmptyDocument = errors.New("xmlmap: document has no root element")
	ErrMalformed     = errors.New("xmlmap: malformed document")
)
