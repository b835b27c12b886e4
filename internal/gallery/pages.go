package gallery

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed all:static
var staticFS embed.FS

const (
	indexPageName     = "index.html"
	slideshowPageName = "slideshow.html"

	disabledButtonClass = "indexButtonDisabled"
	startingPointSize   = 12
)

// sizedWord is one word of a directory link label.
type sizedWord struct {
	Text string
	Size int
}

// subDirLink links an index page to an image-bearing child directory.
type subDirLink struct {
	Href  string
	Words []sizedWord
}

// indexPage is the data for index.html.
type indexPage struct {
	Title          string
	WebFolderName  string
	StaticBase     string
	IsRoot         bool
	SubDirs        []subDirLink
	OwnCount       int
	RecursiveCount int

	SlideshowClass             string
	SlideshowRndClass          string
	SlideshowRecursiveRndClass string
}

// slideshowPage is the data for slideshow.html.
type slideshowPage struct {
	Title         string
	WebFolderName string
	StaticBase    string
	ImagesJSON    string
	RecursiveJSON string
}

// pageRenderer executes the embedded page templates.
type pageRenderer struct {
	index     *template.Template
	slideshow *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, newGeneratorError(RenderFailed, "failed to parse index template", "", err)
	}
	slideshow, err := template.ParseFS(templateFS, "templates/slideshow.html.tmpl")
	if err != nil {
		return nil, newGeneratorError(RenderFailed, "failed to parse slideshow template", "", err)
	}
	return &pageRenderer{index: index, slideshow: slideshow}, nil
}

func (r *pageRenderer) renderIndex(data indexPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return nil, newGeneratorError(RenderFailed, "failed to render index page", data.Title, err)
	}
	return buf.Bytes(), nil
}

func (r *pageRenderer) renderSlideshow(data slideshowPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.slideshow.Execute(&buf, data); err != nil {
		return nil, newGeneratorError(RenderFailed, "failed to render slideshow page", data.Title, err)
	}
	return buf.Bytes(), nil
}

// newSubDirLink builds the link for a child directory called name.
func newSubDirLink(name string) subDirLink {
	return subDirLink{
		Href:  escapeHash(name) + "/" + indexPageName,
		Words: descendingSizeWords(name),
	}
}

// descendingSizeWords splits name on spaces and underscores. The point size
// starts at 12 and drops by one every two words, never below 1.
func descendingSizeWords(name string) []sizedWord {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	words := make([]sizedWord, 0, len(fields))
	for i, f := range fields {
		words = append(words, sizedWord{
			Text: f,
			Size: max(startingPointSize-i/2, 1),
		})
	}
	return words
}

func buttonClass(count int) string {
	if count > 0 {
		return ""
	}
	return disabledButtonClass
}

// staticResources lists the embedded static files as paths relative to the
// web folder root.
func staticResources() ([]string, error) {
	var files []string
	err := fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, strings.TrimPrefix(p, "static/"))
		}
		return nil
	})
	return files, err
}

func readStaticResource(rel string) ([]byte, error) {
	return staticFS.ReadFile(path.Join("static", rel))
}
