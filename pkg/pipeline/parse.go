package pipeline

import (
	"context"
	"time"

	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/observability"
)

// Parse decodes the input document.
func Parse(ctx context.Context, opts Options) (*rpio.Input, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.InputFormat)
	start := time.Now()

	in, err := rpio.Parse(opts.Input, opts.InputFormat)

	bins := 0
	if in != nil {
		bins = len(in.Primary.Binning()) - 1
	}
	hooks.OnParseComplete(ctx, opts.InputFormat, bins, time.Since(start), err)
	return in, err
}
