// Package extract recovers news candidates from unstructured listing-page
// HTML. University news pages have no fixed DOM schema: anchor text is
// free-form and publication dates sit in arbitrary sibling or wrapper
// elements. The extractor pairs every plausible anchor with the nearest
// date found on its ancestor chain.
package extract
