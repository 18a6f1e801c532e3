package cache

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("hero", "Oremos Juntos")
		got, exists := cache.Get("hero")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "Oremos Juntos" {
			t.Errorf("Expected %q, got %q", "Oremos Juntos", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, exists := cache.Get("non-existent"); exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set("gone", "x")
		cache.Delete("gone")
		if _, exists := cache.Get("gone"); exists {
			t.Error("Expected key to be deleted")
		}
		// Should not panic
		cache.Delete("non-existent")
	})

	t.Run("SetTo and Len", func(t *testing.T) {
		cache.SetTo(map[string]string{"a": "1", "b": "2"})
		if cache.Len() != 2 {
			t.Errorf("Expected 2 items, got %d", cache.Len())
		}
		if _, exists := cache.Get("hero"); exists {
			t.Error("SetTo should replace all items")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Clear()
		if cache.Len() != 0 {
			t.Errorf("Expected empty cache, got %d", cache.Len())
		}
	})
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			cache.Set(i, i*i)
		}(i)
		go func(i int) {
			defer wg.Done()
			cache.Get(i)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		if v, ok := cache.Get(i); !ok || v != i*i {
			t.Errorf("Expected %d for key %d, got %d (%v)", i*i, i, v, ok)
		}
	}
}

func TestRenderedPageCache(t *testing.T) {
	ClearRenderedPageCache()

	page := &RenderedPage{HTML: []byte("<h1>Privacidade</h1>"), Title: "Privacidade"}
	SetRenderedPage("hash-1", "mmark", page)

	t.Run("Hit", func(t *testing.T) {
		got, ok := GetRenderedPage("hash-1", "mmark")
		if !ok || got != page {
			t.Errorf("Expected cached page, got %v (%v)", got, ok)
		}
	})

	t.Run("Renderer is part of the key", func(t *testing.T) {
		if _, ok := GetRenderedPage("hash-1", "classic"); ok {
			t.Error("Expected miss for another renderer")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		ClearRenderedPageCache()
		if _, ok := GetRenderedPage("hash-1", "mmark"); ok {
			t.Error("Expected miss after clear")
		}
	})
}

func TestStaticAndSyntaxCaches(t *testing.T) {
	SetStaticHash("/static/style.css", "abc")
	if h, ok := GetStaticHash("/static/style.css"); !ok || h != "abc" {
		t.Errorf("Unexpected static hash %q (%v)", h, ok)
	}

	SetSyntaxCSS("github", template.CSS(".chroma{}"))
	if css, ok := GetSyntaxCSS("github"); !ok || css != ".chroma{}" {
		t.Errorf("Unexpected syntax css %q (%v)", css, ok)
	}
}

func TestHashStatic(t *testing.T) {
	fsys := fstest.MapFS{
		"app.js":         {Data: []byte("console.log(1)")},
		"img/logo.svg":   {Data: []byte("<svg/>")},
		"img/other.svg":  {Data: []byte("<svg/>")},
		"changed/app.js": {Data: []byte("console.log(2)")},
	}
	if err := HashStatic(fsys, "/static/"); err != nil {
		t.Fatalf("HashStatic: %v", err)
	}

	for _, p := range []string{"/static/app.js", "/static/img/logo.svg", "/static/changed/app.js"} {
		if h, ok := GetStaticHash(p); !ok || !strings.HasPrefix(h, `"`) {
			t.Errorf("Expected a quoted etag for %s, got %q (%v)", p, h, ok)
		}
	}
	if _, ok := GetStaticHash("/static/img"); ok {
		t.Error("Directories must not be hashed")
	}

	same1, _ := GetStaticHash("/static/img/logo.svg")
	same2, _ := GetStaticHash("/static/img/other.svg")
	diff, _ := GetStaticHash("/static/changed/app.js")
	app, _ := GetStaticHash("/static/app.js")
	if same1 != same2 || app == diff {
		t.Error("Expected etags to follow file contents")
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := NewCache[string, int]()
	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(fmt.Sprintf("key-%d", i%1000))
	}
}
