// Package i18n holds the localized prompt segment catalog used by the
// build-prompt formatter.
//
// A catalog maps a locale (BCP 47, e.g. "en-US") to named segments. Every
// segment carries three phrasings, chosen by where the segment lands in the
// assembled prompt: First, Middle and Last.
//
// Catalogs are loaded through a SegmentAdapter. MapAdapter serves in-memory
// data (tests, overrides) and FSAdapter reads YAML files from any fs.FS,
// including the embedded default catalog returned by Default:
//
//	cat, err := i18n.NewCatalog(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), os.DirFS("prompts"), "."))
//
// Locale negotiation uses golang.org/x/text/language, so "en-AU" and
// Accept-Language style strings resolve to the closest supported locale and
// unknown locales fall back to the default (en-US).
//
// The HTTP Middleware stores the negotiated locale in the request context.
package i18n
