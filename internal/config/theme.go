package config

const (
	LightTheme string = "light"
	DarkTheme  string = "dark"

	LightThemeIcon string = `<span class="material-symbols-outlined">light_mode</span>`
	DarkThemeIcon  string = `<span class="material-symbols-outlined">dark_mode</span>`

	DefaultDarkSyntaxTheme  string = "gruvbox"
	DefaultLightSyntaxTheme string = "catppuccin-latte"

	DefaultTheme string = DarkTheme
)
