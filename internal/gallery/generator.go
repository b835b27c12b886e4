// Package gallery turns a populated image tree into a browsable static site:
// per-directory JSON manifests, index and slideshow pages, and the shared
// stylesheets and scripts they load.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/debug"
	"github.com/tacogips/swag/internal/imagetree"
)

// DefaultMaxDeepImages is the default cap on recursive manifest entries.
const DefaultMaxDeepImages = 10000

// Options configures a Generator.
type Options struct {
	// SiteRoot is the directory served as "/". It is the scanned root.
	SiteRoot string
	// WebFolderName is the output folder created under SiteRoot.
	WebFolderName string
	// MaxDeepImages caps each recursive manifest. Zero disables them.
	MaxDeepImages int
	// DeleteExisting removes a pre-existing output folder first.
	DeleteExisting bool
}

// Result summarizes one generation run.
type Result struct {
	// OutputDir is SiteRoot joined with WebFolderName.
	OutputDir string
	// DirectoriesWritten counts directories whose manifests and pages were written.
	DirectoriesWritten int
	// ManifestsWritten counts images.json and recursive.json files.
	ManifestsWritten int
	// PagesWritten counts index.html and slideshow.html files.
	PagesWritten int
	// StaticFilesWritten counts stylesheets and scripts.
	StaticFilesWritten int
	// Unaddressable counts manifest entries dropped because the image lies
	// outside SiteRoot.
	Unaddressable int
	// Errors holds one error per directory that could not be generated.
	Errors []error
}

// Generator writes the gallery for a scanned tree.
type Generator struct {
	opts     Options
	writer   Writer
	shuffler Shuffler
	observer Observer
	pages    *pageRenderer

	outputDir  string
	staticBase string
}

// Option configures a Generator.
type Option func(*Generator)

// WithShuffler replaces the random source used for recursive samples.
func WithShuffler(s Shuffler) Option {
	return func(g *Generator) {
		g.shuffler = s
	}
}

// WithObserver attaches the generation observer.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

// WithWriter replaces the file writer.
func WithWriter(w Writer) Option {
	return func(g *Generator) {
		g.writer = w
	}
}

// NewGenerator creates a Generator writing to fs.
func NewGenerator(fs afero.Fs, opts Options, options ...Option) (*Generator, error) {
	if strings.TrimSpace(opts.SiteRoot) == "" {
		return nil, newGeneratorError(InvalidOptions, "site root is required", "", nil)
	}
	if strings.TrimSpace(opts.WebFolderName) == "" {
		return nil, newGeneratorError(InvalidOptions, "web folder name is required", "", nil)
	}
	if opts.MaxDeepImages < 0 {
		return nil, newGeneratorError(InvalidOptions,
			fmt.Sprintf("max deep images must not be negative, got %d", opts.MaxDeepImages), "", nil)
	}

	pages, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		opts:      opts,
		writer:    NewFileWriter(fs),
		shuffler:  NewRandomShuffler(),
		pages:     pages,
		outputDir: filepath.Join(opts.SiteRoot, opts.WebFolderName),
	}
	for _, o := range options {
		o(g)
	}

	g.staticBase, err = WebPath(opts.SiteRoot, g.outputDir)
	if err != nil {
		return nil, newGeneratorError(InvalidOptions, "web folder must be inside the site root", g.outputDir, err)
	}
	return g, nil
}

// OutputDir returns the directory the gallery is written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Generate writes the gallery for tree, which must be populated. Failures of
// single directories are collected in Result.Errors and do not stop the run.
// If ctx is cancelled the partial result is returned with ctx.Err().
func (g *Generator) Generate(ctx context.Context, tree *imagetree.Tree) (*Result, error) {
	if tree == nil || !tree.IsPopulated() {
		return nil, imagetree.ErrTreeNotPopulated
	}

	debug.Debug("[gallery] Generate start: output=%s, maxDeepImages=%d", g.outputDir, g.opts.MaxDeepImages)

	result := &Result{OutputDir: g.outputDir}

	if g.opts.DeleteExisting && g.writer.Exists(g.outputDir) {
		if err := g.writer.RemoveAll(g.outputDir); err != nil {
			return nil, err
		}
	}
	if err := g.writer.CreateDir(g.outputDir); err != nil {
		return nil, err
	}
	if err := g.writeStaticResources(result); err != nil {
		return nil, err
	}

	g.generateNode(ctx, tree, tree.Root(), g.outputDir, result)

	if err := ctx.Err(); err != nil {
		debug.Debug("[gallery] Generate cancelled after %d directories", result.DirectoriesWritten)
		return result, err
	}

	debug.Debug("[gallery] Generate complete: directories=%d, manifests=%d, pages=%d, failed=%d",
		result.DirectoriesWritten, result.ManifestsWritten, result.PagesWritten, len(result.Errors))
	return result, nil
}

func (g *Generator) writeStaticResources(result *Result) error {
	files, err := staticResources()
	if err != nil {
		return newGeneratorError(WriteFailed, "failed to list static resources", "", err)
	}
	for _, rel := range files {
		content, err := readStaticResource(rel)
		if err != nil {
			return newGeneratorError(WriteFailed, "failed to read static resource", rel, err)
		}
		if err := g.writer.WriteFile(filepath.Join(g.outputDir, filepath.FromSlash(rel)), content); err != nil {
			return err
		}
		result.StaticFilesWritten++
	}
	return nil
}

// generateNode writes node into outDir, then descends into every child
// whose subtree holds at least one image.
func (g *Generator) generateNode(ctx context.Context, tree *imagetree.Tree, node *imagetree.Node, outDir string, result *Result) {
	if ctx.Err() != nil {
		return
	}

	g.notifyStarted(node.Path)
	if err := g.writeNode(ctx, tree, node, outDir, result); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			debug.Debug("[gallery] Stopped %s: %v", node.Path, err)
			return
		}
		genErr := newGeneratorError(GenerationFailed, "failed to generate directory", node.Path, err)
		debug.Debug("[gallery] %v", genErr)
		result.Errors = append(result.Errors, genErr)
		g.notifyFailed(node.Path, genErr)
	} else {
		result.DirectoriesWritten++
	}

	for _, child := range tree.Children(node) {
		if ctx.Err() != nil {
			return
		}
		if len(child.Images) == 0 {
			continue
		}
		g.generateNode(ctx, tree, child, filepath.Join(outDir, child.Name()), result)
	}
}

// writeNode checks ctx before every write; a node stopped by cancellation
// keeps the files already written but is not counted.
func (g *Generator) writeNode(ctx context.Context, tree *imagetree.Tree, node *imagetree.Node, outDir string, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.writer.CreateDir(outDir); err != nil {
		return err
	}

	jsonDir := filepath.Join(outDir, jsonDirName)
	ownPath := filepath.Join(jsonDir, ownManifestName)
	recursivePath := filepath.Join(jsonDir, recursiveManifestName)

	own := g.ownManifest(node, result)
	if len(own.Images) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.writeManifest(ownPath, own); err != nil {
			return err
		}
		result.ManifestsWritten++
	}

	deep := g.deepManifest(node, result)
	if len(node.Images) > 0 && len(deep.Images) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.writeManifest(recursivePath, deep); err != nil {
			return err
		}
		result.ManifestsWritten++
	}

	index, err := g.pages.renderIndex(g.indexData(tree, node))
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.writer.WriteFile(filepath.Join(outDir, indexPageName), index); err != nil {
		return err
	}
	result.PagesWritten++

	ownWeb, err := WebPath(g.opts.SiteRoot, ownPath)
	if err != nil {
		return err
	}
	recursiveWeb, err := WebPath(g.opts.SiteRoot, recursivePath)
	if err != nil {
		return err
	}
	slideshow, err := g.pages.renderSlideshow(slideshowPage{
		Title:         node.Path,
		WebFolderName: g.opts.WebFolderName,
		StaticBase:    g.staticBase,
		ImagesJSON:    ownWeb,
		RecursiveJSON: recursiveWeb,
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.writer.WriteFile(filepath.Join(outDir, slideshowPageName), slideshow); err != nil {
		return err
	}
	result.PagesWritten++

	return nil
}

// ownManifest lists node's depth-0 images sorted by entry name.
func (g *Generator) ownManifest(node *imagetree.Node, result *Result) Manifest {
	own := node.OwnImages()
	slices.SortStableFunc(own, func(a, b imagetree.DescendantImage) int {
		return strings.Compare(a.Item.Name(), b.Item.Name())
	})

	var m Manifest
	for _, d := range own {
		if web, ok := g.webPath(d.Item, result); ok {
			m.Images = append(m.Images, web)
		}
	}
	return m
}

// deepManifest shuffles node's images at any depth and keeps the first
// MaxDeepImages. Unaddressable images are dropped after the cut, so the
// sample can hold fewer than MaxDeepImages entries.
func (g *Generator) deepManifest(node *imagetree.Node, result *Result) Manifest {
	var m Manifest
	if g.opts.MaxDeepImages == 0 {
		return m
	}
	sample := shuffled(node.Images, g.shuffler)
	sample = sample[:min(len(sample), g.opts.MaxDeepImages)]
	for _, d := range sample {
		if web, ok := g.webPath(d.Item, result); ok {
			m.Images = append(m.Images, web)
		}
	}
	return m
}

func (g *Generator) webPath(item *imagetree.ImageItem, result *Result) (string, bool) {
	web, err := WebPath(g.opts.SiteRoot, item.ImagePath)
	if err != nil {
		if errors.Is(err, ErrOutsideSiteRoot) {
			result.Unaddressable++
		}
		debug.Debug("[gallery] Dropping %s: %v", item.Path, err)
		return "", false
	}
	return web, true
}

func (g *Generator) writeManifest(path string, m Manifest) error {
	content, err := m.Encode()
	if err != nil {
		return newGeneratorError(WriteFailed, "failed to encode manifest", path, err)
	}
	return g.writer.WriteFile(path, content)
}

func (g *Generator) indexData(tree *imagetree.Tree, node *imagetree.Node) indexPage {
	ownCount := node.OwnCount()
	recursiveCount := min(g.opts.MaxDeepImages, node.DeepCount())

	data := indexPage{
		Title:          node.Path,
		WebFolderName:  g.opts.WebFolderName,
		StaticBase:     g.staticBase,
		IsRoot:         node.IsRoot(),
		OwnCount:       ownCount,
		RecursiveCount: recursiveCount,

		SlideshowClass:             buttonClass(ownCount),
		SlideshowRndClass:          buttonClass(ownCount),
		SlideshowRecursiveRndClass: buttonClass(recursiveCount),
	}
	for _, child := range tree.Children(node) {
		if len(child.Images) > 0 {
			data.SubDirs = append(data.SubDirs, newSubDirLink(child.Name()))
		}
	}
	return data
}

func (g *Generator) notifyStarted(dir string) {
	if g.observer == nil {
		return
	}
	safeNotify(func() { g.observer.GenerationStarted(dir) })
}

func (g *Generator) notifyFailed(dir string, err error) {
	if g.observer == nil {
		return
	}
	safeNotify(func() { g.observer.GenerationFailed(dir, err) })
}
