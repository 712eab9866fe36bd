package domain

import "time"

// Node is the closed variant over the two repository node kinds.
// Only *Folder and *Document implement it.
type Node interface {
	NodeID() int
	NodeName() string
	NodeComment() string
	NodeOwner() *User

	sealed()
}

// Folder is a repository collection. The root folder has a nil Parent.
type Folder struct {
	ID      int
	Name    string
	Comment string
	Owner   *User
	Parent  *Folder

	// Date is the structural-change time, used as both creation and
	// modification time on the wire.
	Date time.Time

	Subfolders []*Folder
	Documents  []*Document

	Attributes []Attribute
}

func (f *Folder) NodeID() int         { return f.ID }
func (f *Folder) NodeName() string    { return f.Name }
func (f *Folder) NodeComment() string { return f.Comment }
func (f *Folder) NodeOwner() *User    { return f.Owner }
func (f *Folder) sealed()             {}

// IsRoot reports whether f is the repository root.
func (f *Folder) IsRoot() bool { return f.Parent == nil }

// Path returns the absolute slash path of the folder, "/" for the root
// and no trailing slash otherwise.
func (f *Folder) Path() string {
	if f.IsRoot() {
		return "/"
	}
	if f.Parent.IsRoot() {
		return "/" + f.Name
	}
	return f.Parent.Path() + "/" + f.Name
}

// HasSubfolderNamed reports whether a direct child folder carries the name.
func (f *Folder) HasSubfolderNamed(name string) bool {
	for _, sub := range f.Subfolders {
		if sub.Name == name {
			return true
		}
	}
	return false
}

// HasDocumentNamed reports whether a direct child document carries the name.
func (f *Folder) HasDocumentNamed(name string) bool {
	for _, doc := range f.Documents {
		if doc.Name == name {
			return true
		}
	}
	return false
}

// Document is a versioned repository resource owned by a folder.
type Document struct {
	ID       int
	Name     string
	Comment  string
	Keywords string
	Owner    *User
	Folder   *Folder
	Date     time.Time

	// Sequence orders documents inside their folder.
	Sequence float64

	// Expires is the zero time when no expiry is set.
	Expires time.Time

	// Versions is append-only and ordered by version number.
	Versions []*ContentVersion

	// LockedBy holds the exclusive lock owner, nil when unlocked.
	LockedBy *User

	Attributes []Attribute
}

func (d *Document) NodeID() int         { return d.ID }
func (d *Document) NodeName() string    { return d.Name }
func (d *Document) NodeComment() string { return d.Comment }
func (d *Document) NodeOwner() *User    { return d.Owner }
func (d *Document) sealed()             {}

// LatestContent returns the newest content version, nil for a document
// without any version (never produced by a completed mutation).
func (d *Document) LatestContent() *ContentVersion {
	if len(d.Versions) == 0 {
		return nil
	}
	return d.Versions[len(d.Versions)-1]
}

// Status is the workflow state of a content version.
type Status int

const (
	StatusDraft Status = iota
	StatusInWorkflow
	StatusReleased
	StatusRejected
	StatusObsolete
)

// ContentVersion is one immutable snapshot of a document's bytes.
// Only Date may change after creation, when an identical resubmission
// refreshes the timestamp.
type ContentVersion struct {
	Version          int
	Comment          string
	Date             time.Time
	StoredPath       string
	Checksum         string
	MimeType         string
	FileType         string
	OriginalFilename string
	Status           Status
	StatusComment    string
	StatusDate       time.Time
	Author           *User
}
