package tablescout

import "github.com/arborcap/tablescout/pkg/tablescout/locate"

// Options configures table location. The zero value uses the navy
// header classifier, the default table name catalog, and the default
// scan bounds.
type Options struct {
	// Style overrides the header banner classifier.
	Style locate.StyleFunc
	// Names overrides the known table name catalog.
	Names *locate.Registry
	// Scan overrides the scan bounds.
	Scan *locate.ScanParams
}

// DefaultOptions returns the default location options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) style() locate.StyleFunc {
	if o.Style != nil {
		return o.Style
	}
	return locate.NavyHeader(locate.DefaultStyleParams())
}

func (o Options) names() *locate.Registry {
	if o.Names != nil {
		return o.Names
	}
	return locate.DefaultRegistry()
}

func (o Options) scan() locate.ScanParams {
	if o.Scan != nil {
		return *o.Scan
	}
	return locate.DefaultScanParams()
}
