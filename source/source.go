// Package source switches the reshape default JSON driver to go-json when
// imported for side effects:
//
//	import _ "github.com/reoring/reshape/source"
package source

import (
	"github.com/reoring/reshape"
	drvgojson "github.com/reoring/reshape/source/gojson"
)

// init lives in a separate package to avoid an import cycle with the root.
func init() { reshape.SetJSONDriver(drvgojson.Driver()) }
