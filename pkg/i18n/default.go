package i18n

import (
	"context"
	"embed"
	"sync"
)

//go:embed prompts/*.yaml
var promptsFS embed.FS

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return NewCatalog(context.Background(), NewFSAdapter(NewYAMLParser(), promptsFS, "prompts"))
})

// Default returns the built-in catalog. It panics if the embedded data is
// invalid, which a unit test guards against.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
