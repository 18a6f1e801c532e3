// Package theme handles the dark/light preference and the syntax CSS used by
// the admin JSON preview.
package theme

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/oremos-juntos/internal/cache"
	"github.com/debemdeboas/oremos-juntos/internal/config"
)

func defaultTheme() string {
	if config.AppConfig != nil && valid(config.AppConfig.Theme.Default) {
		return config.AppConfig.Theme.Default
	}
	return config.DefaultTheme
}

func valid(theme string) bool {
	return theme == config.LightTheme || theme == config.DarkTheme
}

// GetThemeFromRequest reads the preference cookie. Anything but light or
// dark falls back to the configured default.
func GetThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil && valid(cookie.Value) {
		return cookie.Value
	}
	return defaultTheme()
}

func Opposite(theme string) string {
	if theme == config.LightTheme {
		return config.DarkTheme
	}
	return config.LightTheme
}

func GetDefaultSyntaxTheme(theme string) string {
	if config.AppConfig == nil {
		if theme == config.LightTheme {
			return config.DefaultLightSyntaxTheme
		}
		return config.DefaultDarkSyntaxTheme
	}
	return map[string]string{
		config.LightTheme: config.AppConfig.Theme.SyntaxHighlighting.DefaultLight,
		config.DarkTheme:  config.AppConfig.Theme.SyntaxHighlighting.DefaultDark,
	}[theme]
}

func GetSyntaxThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && styles.Registry[cookie.Value] != nil {
		return cookie.Value
	}
	return GetDefaultSyntaxTheme(GetThemeFromRequest(r))
}

func GetFormatter() *html.Formatter {
	formatter := html.New(
		html.WithClasses(true),
		html.TabWidth(2),
		html.WithLineNumbers(true),
		html.WrapLongLines(true),
	)
	return formatter
}

func GenerateSyntaxCSS(theme string) template.CSS {
	if css, ok := cache.GetSyntaxCSS(theme); ok {
		return css
	}

	var buf strings.Builder
	formatter := GetFormatter()
	style := styles.Get(theme)

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Calculate the color of highlighted text given the background color
		// for when the Chroma theme doesn't supply a default
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	formatter.WriteCSS(&buf, style)
	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(theme, css)
	return css
}

// GetThemeIcon is the icon of the toggle button, which shows the theme a
// click switches to.
func GetThemeIcon(theme string) string {
	if theme == config.LightTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}

// ToggleHandler flips the preference cookie and asks htmx to refresh the page.
// When switching is disabled the request is refused.
func ToggleHandler(w http.ResponseWriter, r *http.Request) {
	if config.AppConfig != nil && !config.AppConfig.Theme.AllowSwitching {
		http.Error(w, "Theme switching disabled", http.StatusForbidden)
		return
	}

	next := Opposite(GetThemeFromRequest(r))
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    next,
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   config.CookieSyntaxTheme,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.Header().Set(config.HHxRefresh, "true")
	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Write([]byte(GetThemeIcon(next)))
}
