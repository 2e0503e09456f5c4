package plugins

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"

	"github.com/evanw/esbuild/pkg/api"
	"golang.org/x/sync/singleflight"
	"micromachine.dev/dynamic-vendor/lib/vendor"
	"micromachine.dev/dynamic-vendor/lib/vfs"
)

const (
	// DynamicVendorSpecifier is what application code imports.
	DynamicVendorSpecifier = "dynamic-vendor/dynamicImporter"
	dynamicVendorNamespace = "dynamic-vendor"
)

// virtualModulePath is where the importer pretends to live, relative to the
// project root.
var virtualModulePath = filepath.Join("node_modules", "dynamic-vendor", "dynamicImporter")

type DynamicVendorPlugin struct {
	RootDir string
	Config  vendor.Config
	// FS holds the injected module. A fresh one is used when nil. Sharing one
	// across rebuilds keeps the module from being injected twice.
	FS *vfs.FileSystem
}

// VirtualPath is the absolute path the generated module is cached under.
func (p *DynamicVendorPlugin) VirtualPath() (string, error) {
	absDir, err := filepath.Abs(p.RootDir)
	if err != nil {
		return "", fmt.Errorf("could not resolve absolute path: %w", err)
	}
	return filepath.Join(absDir, virtualModulePath), nil
}

func (p *DynamicVendorPlugin) New() (api.Plugin, error) {
	if err := p.Config.Validate(); err != nil {
		return api.Plugin{}, err
	}

	virtualPath, err := p.VirtualPath()
	if err != nil {
		return api.Plugin{}, err
	}

	if p.FS == nil {
		p.FS = vfs.New()
	}
	fsys := p.FS
	resolveDir := filepath.Dir(filepath.Dir(filepath.Dir(virtualPath)))

	var group singleflight.Group

	inject := func() error {
		if fsys.Has(virtualPath) {
			return nil
		}
		_, err, _ := group.Do(virtualPath, func() (any, error) {
			content, err := vendor.Generate(p.Config)
			if err != nil {
				return nil, err
			}
			if err := vendor.Check(content, len(p.Config.Vendors)); err != nil {
				return nil, err
			}
			wrote, err := fsys.Inject(virtualPath, content)
			if err != nil {
				return nil, err
			}
			if wrote {
				slog.Debug("Injected dynamic importer", "path", virtualPath, "vendors", len(p.Config.Vendors), "bytes", len(content))
			}
			return nil, nil
		})
		return err
	}

	return api.Plugin{
		Name: "dynamic-vendor",
		Setup: func(build api.PluginBuild) {
			// Runs ahead of every resolution, like webpack's beforeResolve.
			build.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if err := inject(); err != nil {
					return api.OnResolveResult{}, err
				}
				return api.OnResolveResult{}, nil
			})

			build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(DynamicVendorSpecifier) + "$"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      virtualPath,
						Namespace: dynamicVendorNamespace,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: dynamicVendorNamespace}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				stats, err := fsys.Stat(args.Path)
				if err != nil {
					return api.OnLoadResult{}, err
				}
				if !stats.IsFile() {
					return api.OnLoadResult{}, fmt.Errorf("%s is not a file", args.Path)
				}
				contents, err := fsys.ReadFile(args.Path)
				if err != nil {
					return api.OnLoadResult{}, err
				}
				return api.OnLoadResult{
					Contents:   &contents,
					Loader:     api.LoaderJS,
					ResolveDir: resolveDir,
				}, nil
			})
		},
	}, nil
}
