package config

const (
	DefaultMarkdownRenderer = "mmark"
	ClassicMarkdownRenderer = "classic"
)
