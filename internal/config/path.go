package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticURLPath  = "/" + StaticLocalDir + "/"

	UploadsURLPath = "/uploads/"

	TemplatesLocalDir = "templates"

	TemplateLayout   = "layout.html"
	TemplateLanding  = "landing.html"
	TemplatePage     = "page.html"
	TemplateNotFound = "notfound.html"
	TemplateLogin    = "login.html"
	TemplateAdmin    = "admin.html"
	TemplateLeads    = "leads.html"
)
