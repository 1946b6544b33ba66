// Package catalogdata embeds the default historical map library.
package catalogdata

import _ "embed"

// Default is the Lower Don library in YAML.
//
//go:embed lower_don.yaml
var Default []byte
