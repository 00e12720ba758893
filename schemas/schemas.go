// Package schemas embeds the JSON Schema documents for request bodies and phrase catalogs.
package schemas

import _ "embed"

// AnalyzeRequest is the schema for the POST /phrases/analyze body.
//
//go:embed analyze_request.schema.json
var AnalyzeRequest string

// PhraseCatalog is the schema for phrase catalog documents.
//
//go:embed phrase_catalog.schema.json
var PhraseCatalog string
