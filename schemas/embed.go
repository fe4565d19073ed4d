// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// ResumeDocument is the schema for a resume document as exchanged with the
// AI backend and stored in snapshots.
//
//go:embed resume_document.schema.json
var ResumeDocument string
