package uc

import (
	"io"
	"time"

	"github.com/fbrnila/go-dms-dav/domain"
)

// Debug is the leveled logging sink. Implementations must be safe to
// call on every path; logging never affects control flow.
type Debug interface {
	Debug(v ...interface{})
	Info(v ...interface{})
	Err(v ...interface{})
}

// Authenticator turns credentials into a repository user.
type Authenticator interface {
	Authenticate(login, pass string) (*domain.User, error)
}

// Notifier delivers fire-and-forget events. Failures are never
// surfaced to the caller.
type Notifier interface {
	NewDocument(doc *domain.Document, by *domain.User)
	NewVersion(doc *domain.Document, by *domain.User)
	NewFolder(folder *domain.Folder, by *domain.User)
	Moved(node domain.Node, from *domain.Folder, by *domain.User)
	Deleted(node domain.Node, by *domain.User)
}

// PathInformer maps an absolute slash path onto a repository node.
type PathInformer interface {
	Lookup(path string) (domain.Node, error)
}

// Namer is the configured document naming strategy. Resolve and
// Present are inverses of each other so presented paths survive a
// round trip through the resolver.
type Namer interface {
	Resolve(name string, parent *domain.Folder) *domain.Document
	Present(doc *domain.Document) string
}

// IndexRenderer produces the HTML index served on a direct folder GET.
type IndexRenderer interface {
	Index(path string, parent string, entries []DirEntry) string
}

// DirEntry is one row of the HTML directory index.
type DirEntry struct {
	Name    string
	Href    string
	Size    int64
	ModTime time.Time
	Mime    string
}

// AddDocumentRequest carries everything the repository needs to create
// a document together with its first content version.
type AddDocumentRequest struct {
	Folder           *domain.Folder
	Name             string
	Owner            *domain.User
	Sequence         float64
	File             string
	OriginalFilename string
	FileType         string
	MimeType         string
	Approval         domain.Approval
	InitialStatus    domain.Status
}

// NewVersionRequest carries a content payload for a version append or
// an in-place replacement of the latest version.
type NewVersionRequest struct {
	Author           *domain.User
	File             string
	OriginalFilename string
	FileType         string
	MimeType         string
	Approval         domain.Approval
	InitialStatus    domain.Status
}

// Repository is the query/mutation API of the document store. It owns
// the version sequence and the per-document lock field; this layer only
// checks preconditions and maps failures to status codes.
type Repository interface {
	RootFolder() *domain.Folder
	FolderByID(id int) (*domain.Folder, error)
	DocumentByID(id int) (*domain.Document, error)
	FolderByName(name string, parent *domain.Folder) *domain.Folder
	DocumentByName(name string, parent *domain.Folder) *domain.Document
	DocumentByOriginalFilename(name string, parent *domain.Folder) *domain.Document

	// SequenceRange reports the lowest and highest document sequence in
	// a folder, both zero for an empty folder.
	SequenceRange(f *domain.Folder) (min, max float64)

	AddFolder(parent *domain.Folder, name string, owner *domain.User) (*domain.Folder, error)
	RemoveFolder(f *domain.Folder) error
	AddDocument(req AddDocumentRequest) (*domain.Document, error)
	RemoveDocument(d *domain.Document) error
	AddVersion(d *domain.Document, req NewVersionRequest) (*domain.ContentVersion, error)
	ReplaceVersion(d *domain.Document, req NewVersionRequest) error
	// TouchVersion refreshes the latest version's timestamp without
	// creating anything.
	TouchVersion(d *domain.Document) error

	SetDocumentFolder(d *domain.Document, f *domain.Folder) error
	SetFolderParent(f *domain.Folder, parent *domain.Folder) error
	SetName(n domain.Node, name string) error
	SetComment(n domain.Node, comment string) error
	// SetExpires clears the expiry when handed the zero time.
	SetExpires(d *domain.Document, expires time.Time) error
	SetAttribute(n domain.Node, def *domain.AttributeDefinition, value interface{}) error

	Lock(n domain.Node, u *domain.User) error
	Unlock(n domain.Node, u *domain.User) error

	AccessMode(n domain.Node, u *domain.User) domain.AccessMode
	AttributeDefinitionByName(name string) *domain.AttributeDefinition

	// ContentPath returns the filesystem path of a stored version.
	ContentPath(v *domain.ContentVersion) string
	// ContentSize returns the stored file size, zero if missing.
	ContentSize(v *domain.ContentVersion) int64
	OpenContent(v *domain.ContentVersion) (io.ReadCloser, error)
	ChecksumFile(path string) (string, error)

	MandatoryReviewers(f *domain.Folder, d *domain.Document, u *domain.User) domain.Assignees
	MandatoryApprovers(f *domain.Folder, d *domain.Document, u *domain.User) domain.Assignees
	MandatoryWorkflows(u *domain.User) []*domain.Workflow

	UsedDiskSpace(u *domain.User) int64
}
