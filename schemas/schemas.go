// Package schemas embeds the JSON Schemas that guard data crossing the
// engine's persistence boundaries.
package schemas

import _ "embed"

// SessionSnapshot is the JSON Schema for the device-local session snapshot.
//
//go:embed session.schema.json
var SessionSnapshot string
