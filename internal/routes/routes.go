// Package routes defines HTTP route constants for the application.
package routes

// Public routes
const (
	RootPath    = "/"
	PrivacyPath = "/privacy"
	TermsPath   = "/terms"
	RobotsPath  = "/robots.txt"
	ThemeToggle = "/theme/toggle"

	// SSE
	SSEPath = "/sse"

	APILeads = "/api/leads"
)

// Admin routes
const (
	AdminPath   = "/admin"
	AdminLogin  = "/admin/login"
	AdminLogout = "/admin/logout"

	// Buffer API
	BufferField        = "/admin/buffer/field"
	BufferItemsAdd     = "/admin/buffer/items/add"
	BufferItemsUpdate  = "/admin/buffer/items/update"
	BufferItemsRemove  = "/admin/buffer/items/remove"
	BufferItemsMove    = "/admin/buffer/items/move"
	BufferSectionsMove = "/admin/buffer/sections/move"
	BufferSave         = "/admin/buffer/save"
	BufferDiscard      = "/admin/buffer/discard"
	BufferUpload       = "/admin/buffer/upload"
	BufferExport       = "/admin/buffer/export"

	AdminLeads         = "/admin/leads"
	AdminLeadContacted = "/admin/leads/{id}/contacted"
	AdminLead          = "/admin/leads/{id}"
)
