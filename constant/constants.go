package constant

const (
	// HCType is the header Content-Type
	HCType = "Content-Type"
	// DAVNS is the standard WebDAV property namespace
	DAVNS = "DAV:"
	// VendorNS is the namespace for repository-specific properties
	VendorNS = "DMS:"
	// DirContentType is reported as the content type of collections
	DirContentType = "httpd/unix-directory"
)

const (
	TextPlain    = "text/plain"
	TextHtml     = "text/html"
	TextMarkdown = "text/markdown"
	AppPDF       = "application/pdf"
)

func AllMethods() []string {
	return []string{
		"OPTIONS", "HEAD", "GET",
		"PUT", "MKCOL", "DELETE",
		"PROPFIND", "PROPPATCH",
		"COPY", "MOVE", "LOCK", "UNLOCK",
	}
}
