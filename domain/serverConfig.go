package domain

// NamingMode selects the single strategy used to resolve a path's last
// segment to a document and to present a document's name on the wire.
// Resolver and presenter share the mode so presented paths resolve back
// to the same document.
type NamingMode string

const (
	// NameByDocument matches the document's display name.
	NameByDocument NamingMode = "document"
	// NameByOriginalFilename matches the originally uploaded filename.
	// Not unique among siblings unless enforced elsewhere.
	NameByOriginalFilename NamingMode = "original"
	// NameByPrefixedFilename uses the synthetic
	// "{id}-{version}-{originalFilename}" form. The numeric prefix is
	// enough to fetch the document, the rest is decoration.
	NameByPrefixedFilename NamingMode = "prefixed"
)

// DocPosition selects where newly created documents are sequenced
// inside their folder.
type DocPosition string

const (
	DocPositionStart DocPosition = "start"
	DocPositionEnd   DocPosition = "end"
)

// ServerConfig holds a list of configuration parameters for the server
type ServerConfig struct {
	// Listen contains the listening address in format ":8080"
	Listen string `yaml:"listen"`

	// ContentDir points to the folder holding the stored document files
	ContentDir string `yaml:"contentDir"`

	// BoltPath points to the location of the Bolt db on the filesystem
	BoltPath string `yaml:"boltPath"`

	// Naming selects the document naming strategy
	Naming NamingMode `yaml:"naming"`

	// WorkflowMode controls reviewer/approver derivation for new versions
	WorkflowMode WorkflowMode `yaml:"workflowMode"`

	// DefaultDocPosition sequences new documents at the start or end of
	// their folder
	DefaultDocPosition DocPosition `yaml:"defaultDocPosition"`

	// InitialDocumentStatus is applied to freshly created versions
	InitialDocumentStatus Status `yaml:"initialDocumentStatus"`

	// EnableReplaceDoc allows PUT to overwrite the latest version in
	// place instead of issuing a new version number
	EnableReplaceDoc bool `yaml:"enableReplaceDoc"`

	// EnableDuplicateDocNames permits sibling documents with equal names
	EnableDuplicateDocNames bool `yaml:"enableDuplicateDocNames"`

	// EnableDuplicateSubfolderNames permits sibling folders with equal names
	EnableDuplicateSubfolderNames bool `yaml:"enableDuplicateSubfolderNames"`

	// CookieAge contains the validity duration for session cookies (in hours)
	CookieAge int64 `yaml:"cookieAge"`

	// Debug (display or hide stdout logging)
	Debug bool `yaml:"debug"`
}
