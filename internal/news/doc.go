// Package news defines the news record model and the text heuristics that
// turn free-form listing-page fragments into well-formed records: date
// recognition and parsing, Chinese-content detection, and keyword-based
// categorization.
package news
