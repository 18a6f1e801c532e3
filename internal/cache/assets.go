package cache

import (
	"html/template"
	"io/fs"

	"github.com/debemdeboas/oremos-juntos/internal/util"
)

// ETags of the embedded static files, keyed by URL path.
var staticCache = NewCache[string, string]()

// Chroma stylesheets keyed by style name.
var syntaxCache = NewCache[string, template.CSS]()

// HashStatic records the content hash of every file in fsys under urlPrefix.
func HashStatic(fsys fs.FS, urlPrefix string) error {
	return fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		staticCache.Set(urlPrefix+name, `"`+util.ContentHash(data)[:16]+`"`)
		return nil
	})
}

func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticCache.Set(path, hash)
}

func GetSyntaxCSS(style string) (template.CSS, bool) {
	return syntaxCache.Get(style)
}

func SetSyntaxCSS(style string, css template.CSS) {
	syntaxCache.Set(style, css)
}
