package app

import _ "embed"

// defaultManifest provisions the standard reader station when no manifest
// path is given.
//
//go:embed provision.yaml
var defaultManifest []byte
