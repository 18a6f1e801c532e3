package render

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitFrontMatter(t *testing.T) {
	testCases := []struct {
		name     string
		markdown string
		wantErr  bool
		noBlock  bool
		want     PageMeta
		wantBody string
	}{
		{
			name:     "Title only",
			markdown: "%%%\ntitle = \"Política de Privacidade\"\n%%%\nRespeitamos seu silêncio.",
			want:     PageMeta{Title: "Política de Privacidade", Language: "pt"},
			wantBody: "Respeitamos seu silêncio.",
		},
		{
			name:     "Language and update date",
			markdown: "%%%\ntitle = \"Terms\"\nlanguage = \"en\"\nupdated = \"2025-03-01\"\n%%%\nBe kind.",
			want:     PageMeta{Title: "Terms", Language: "en", Updated: "2025-03-01"},
			wantBody: "Be kind.",
		},
		{
			name:     "Extra whitespace",
			markdown: "\n\n\n%%%\n\ntitle = \"Termos de Uso\"\n\n%%%\r\nSeja gentil.",
			want:     PageMeta{Title: "Termos de Uso", Language: "pt"},
			wantBody: "Seja gentil.",
		},
		{
			name:     "Plain text",
			markdown: "Respeitamos seu silêncio e sua privacidade.",
			noBlock:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "Respeitamos seu silêncio e sua privacidade.",
		},
		{
			name:     "Empty text",
			noBlock:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "",
		},
		{
			name:     "Text before the block",
			markdown: "Ignorado\n%%%\ntitle = \"Privacidade\"\n%%%",
			noBlock:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "Ignorado\n%%%\ntitle = \"Privacidade\"\n%%%",
		},
		{
			name:     "Inline delimiters",
			markdown: "%%% %%%",
			noBlock:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "%%% %%%",
		},
		{
			name:     "Never closed",
			markdown: "%%%\ntitle = \"Incompleto\nTexto",
			wantErr:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "%%%\ntitle = \"Incompleto\nTexto",
		},
		{
			name:     "Bad TOML",
			markdown: "%%%\ntitle = \"Incompleto\n%%%\nTexto",
			wantErr:  true,
			want:     PageMeta{Language: "pt"},
			wantBody: "%%%\ntitle = \"Incompleto\n%%%\nTexto",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body, err := SplitFrontMatter([]byte(tc.markdown))

			switch {
			case tc.noBlock:
				if !errors.Is(err, ErrNoFrontMatter) {
					t.Errorf("Expected ErrNoFrontMatter, got %v", err)
				}
			case tc.wantErr:
				if err == nil || errors.Is(err, ErrNoFrontMatter) {
					t.Errorf("Expected a front matter error, got %v", err)
				}
			case err != nil:
				t.Fatalf("Unexpected error: %v", err)
			}

			if meta != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, meta)
			}
			if got := strings.TrimSpace(string(body)); got != tc.wantBody {
				t.Errorf("Expected body %q, got %q", tc.wantBody, got)
			}
		})
	}
}
