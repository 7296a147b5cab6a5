//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/reshape"
	drv "github.com/reoring/reshape/source/gojson"
)

func init() {
	reshape.SetJSONDriver(drv.Driver())
}
