package bundler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"micromachine.dev/dynamic-vendor/lib/bundler/plugins"
	"micromachine.dev/dynamic-vendor/lib/utils"
	"micromachine.dev/dynamic-vendor/lib/vendor"
	"micromachine.dev/dynamic-vendor/lib/vfs"
)

type Bundle struct {
	RootDir     string
	EntryPoints []string
	OutDir      string
	Environment string
	Config      vendor.Config
	// External keeps vendors out of the bundle; they load at runtime.
	External bool
	Minify   bool

	fs *vfs.FileSystem
}

var ErrNoEntryPoints = errors.New("no entry points")

// Options assembles the esbuild options shared by Pack and Watch.
func (b *Bundle) Options() (api.BuildOptions, error) {
	absDir, err := filepath.Abs(b.RootDir)
	if err != nil {
		return api.BuildOptions{}, fmt.Errorf("could not resolve absolute path: %w", err)
	}

	if len(b.EntryPoints) == 0 {
		return api.BuildOptions{}, ErrNoEntryPoints
	}

	if b.fs == nil {
		b.fs = vfs.New()
	}

	dynamicVendorPlugin := plugins.DynamicVendorPlugin{
		RootDir: absDir,
		Config:  b.Config,
		FS:      b.fs,
	}

	dynamicVendor, err := dynamicVendorPlugin.New()
	if err != nil {
		return api.BuildOptions{}, err
	}

	pluginList := []api.Plugin{dynamicVendor}

	if b.External {
		externalVendorPlugin := plugins.ExternalVendorPlugin{
			Vendors: b.Config.Vendors,
		}
		pluginList = append(pluginList, externalVendorPlugin.New())
	}

	entryPoints := make([]string, len(b.EntryPoints))
	for i, e := range b.EntryPoints {
		entryPoints[i] = strings.TrimPrefix(e, "/")
	}

	return api.BuildOptions{
		Plugins:           pluginList,
		EntryPoints:       entryPoints,
		Outdir:            b.GetOutputDir(),
		AbsWorkingDir:     absDir,
		Bundle:            true,
		Write:             true,
		AllowOverwrite:    true,
		Splitting:         true,
		LogLevel:          api.LogLevelSilent,
		Format:            api.FormatESModule,
		Platform:          api.PlatformBrowser,
		TreeShaking:       api.TreeShakingTrue,
		Loader:            map[string]api.Loader{".js": api.LoaderJSX, ".mjs": api.LoaderJSX, ".cjs": api.LoaderJSX},
		Target:            api.ES2020,
		MinifyWhitespace:  b.Minify,
		MinifyIdentifiers: b.Minify,
		MinifySyntax:      b.Minify,
		Sourcemap:         api.SourceMapLinked,
		ChunkNames:        "chunks/[name]-[hash]",
		Define: map[string]string{
			"process.env.NODE_ENV":            toJSString(b.Environment),
			"global.process.env.NODE_ENV":     toJSString(b.Environment),
			"globalThis.process.env.NODE_ENV": toJSString(b.Environment),
		},
	}, nil
}

// Pack runs a single build.
func (b *Bundle) Pack() error {
	options, err := b.Options()
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return err
	}

	outDir := b.GetOutputDir()
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(options.AbsWorkingDir, outDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("could not create output directory: %w", err)
	}

	start := time.Now()
	utils.LogWithColor(utils.Cyan, "Bundling application...")

	result := api.Build(options)
	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			slog.Error(fmt.Sprintf("✗ %v", err.Text))
		}
		return &Error{result.Errors}
	}

	for _, w := range result.Warnings {
		slog.Warn(w.Text)
	}

	elapsed := time.Since(start)
	utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Bundling completed in %s (%d files)", elapsed, len(result.OutputFiles)))
	return nil
}

// Watch rebuilds on change until ctx is done. The injected module survives
// rebuilds, so it is generated once per watch session.
func (b *Bundle) Watch(ctx context.Context) error {
	options, err := b.Options()
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return err
	}

	rebuilds := 0
	options.Plugins = append(options.Plugins, api.Plugin{
		Name: "watch-log",
		Setup: func(build api.PluginBuild) {
			var start time.Time
			build.OnStart(func() (api.OnStartResult, error) {
				start = time.Now()
				return api.OnStartResult{}, nil
			})
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				rebuilds++
				if len(result.Errors) > 0 {
					slog.Error((&Error{result.Errors}).Error())
					return api.OnEndResult{}, nil
				}
				utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Build #%d completed in %s", rebuilds, time.Since(start)))
				return api.OnEndResult{}, nil
			})
		},
	})

	buildCtx, ctxErr := api.Context(options)
	if ctxErr != nil {
		return &Error{ctxErr.Errors}
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("could not start watch mode: %w", err)
	}

	utils.LogWithColor(utils.Cyan, "Watching for changes...")
	<-ctx.Done()
	return nil
}

// FS is the virtual file system the dynamic importer is served from.
func (b *Bundle) FS() *vfs.FileSystem {
	return b.fs
}

func (b *Bundle) GetOutputDir() string {
	if b.OutDir == "" {
		return "dist"
	}
	return b.OutDir
}

func toJSString(val string) string {
	if val == "" {
		return `""`
	}
	// JSON marshal handles escaping
	b, _ := json.Marshal(val)
	return string(b)
}
