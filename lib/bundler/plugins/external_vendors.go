package plugins

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"micromachine.dev/dynamic-vendor/lib/vendor"
)

// ExternalVendorPlugin leaves vendor imports unbundled, so each import() in
// the dynamic importer loads the package at runtime.
type ExternalVendorPlugin struct {
	Vendors []vendor.Spec
}

// Filter matches every vendor name and any subpath below it.
func (p *ExternalVendorPlugin) Filter() string {
	names := make([]string, 0, len(p.Vendors))
	seen := map[string]struct{}{}
	for _, v := range p.Vendors {
		if _, ok := seen[v.Name]; ok {
			continue
		}
		seen[v.Name] = struct{}{}
		names = append(names, regexp.QuoteMeta(v.Name))
	}
	return fmt.Sprintf(`^(%s)(/.*)?$`, strings.Join(names, "|"))
}

func (p *ExternalVendorPlugin) New() api.Plugin {
	return api.Plugin{
		Name: "external-vendors",
		Setup: func(build api.PluginBuild) {
			if len(p.Vendors) == 0 {
				return
			}
			build.OnResolve(api.OnResolveOptions{Filter: p.Filter()}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				return api.OnResolveResult{
					Path:     args.Path,
					External: true,
				}, nil
			})
		},
	}
}
