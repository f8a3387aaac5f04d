package layers

import "github.com/nationalmap/px3-catalog-server/pkg/px3"

// BuildAll produces bare descriptors for every catalog service, keyed by
// service id. This is the eager no-fetch path backing the overlay list.
// Services marked disableViewing get a descriptor too; hiding them is the
// consumer's call.
func (f *Factory) BuildAll(services map[string]*px3.Service, opts BuildOptions) map[string]*Descriptor {
	out := make(map[string]*Descriptor, len(services))
	for id, svc := range services {
		out[id] = f.Build(svc, nil, opts)
	}
	return out
}
