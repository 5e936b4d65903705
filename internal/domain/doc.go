// Package domain contains the core domain model for the token-accounting
// pipeline.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// YAML parsing, net/http, tokenizer vocabularies, or the filesystem.
// Infra/adapters map into/from these types.
package domain
