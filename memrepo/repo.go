// Package memrepo is the in-memory reference implementation of the
// repository API. Content bytes live on disk under a content
// directory; everything else is held in maps guarded by one mutex.
package memrepo

import (
	"sync"
	"time"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

type Repo struct {
	mu sync.Mutex

	contentDir string
	root       *domain.Folder

	folders   map[int]*domain.Folder
	documents map[int]*domain.Document
	users     map[int]*domain.User
	attrDefs  map[string]*domain.AttributeDefinition

	// access[nodeKey][userID], consulted before defaultAccess
	access        map[string]map[int]domain.AccessMode
	defaultAccess domain.AccessMode

	reviewers map[int]domain.Assignees
	approvers map[int]domain.Assignees
	workflows map[int][]*domain.Workflow

	nextID int

	// onMutate receives a snapshot after every completed mutation; the
	// hook must not call back into the repository.
	onMutate func(*Snapshot)

	now func() time.Time
}

// New creates an empty repository with a root folder owned by nobody.
func New(contentDir string) *Repo {
	r := &Repo{
		contentDir:    contentDir,
		folders:       map[int]*domain.Folder{},
		documents:     map[int]*domain.Document{},
		users:         map[int]*domain.User{},
		attrDefs:      map[string]*domain.AttributeDefinition{},
		access:        map[string]map[int]domain.AccessMode{},
		defaultAccess: domain.AccessReadWrite,
		reviewers:     map[int]domain.Assignees{},
		approvers:     map[int]domain.Assignees{},
		workflows:     map[int][]*domain.Workflow{},
		nextID:        1,
		now:           time.Now,
	}
	r.root = &domain.Folder{ID: r.takeID(), Name: "", Date: r.now()}
	r.folders[r.root.ID] = r.root
	return r
}

var _ uc.Repository = (*Repo)(nil)

// OnMutate registers a hook run after each completed mutation, used by
// the persistence layer to snapshot the tree.
func (r *Repo) OnMutate(fn func(*Snapshot)) { r.onMutate = fn }

func (r *Repo) mutated() {
	if r.onMutate != nil {
		r.onMutate(r.exportLocked())
	}
}

func (r *Repo) takeID() int {
	id := r.nextID
	r.nextID++
	return id
}

func (r *Repo) RootFolder() *domain.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

func (r *Repo) FolderByID(id int) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.folders[id]; ok {
		return f, nil
	}
	return nil, domain.ErrNotFound
}

func (r *Repo) DocumentByID(id int) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.documents[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (r *Repo) FolderByName(name string, parent *domain.Folder) *domain.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range parent.Subfolders {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (r *Repo) DocumentByName(name string, parent *domain.Folder) *domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range parent.Documents {
		if doc.Name == name {
			return doc
		}
	}
	return nil
}

func (r *Repo) DocumentByOriginalFilename(name string, parent *domain.Folder) *domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range parent.Documents {
		if lc := doc.LatestContent(); lc != nil && lc.OriginalFilename == name {
			return doc
		}
	}
	return nil
}

func (r *Repo) SequenceRange(f *domain.Folder) (min, max float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, doc := range f.Documents {
		if i == 0 || doc.Sequence < min {
			min = doc.Sequence
		}
		if i == 0 || doc.Sequence > max {
			max = doc.Sequence
		}
	}
	return min, max
}

// AddUser registers a repository account.
func (r *Repo) AddUser(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.takeID()
	}
	r.users[u.ID] = u
	r.mutated()
	return u
}

// UserByLogin finds an account by login name.
func (r *Repo) UserByLogin(login string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// AddAttributeDefinition registers a custom attribute definition.
func (r *Repo) AddAttributeDefinition(def *domain.AttributeDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def.ID == 0 {
		def.ID = r.takeID()
	}
	r.attrDefs[def.Name] = def
	r.mutated()
}

func (r *Repo) AttributeDefinitionByName(name string) *domain.AttributeDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attrDefs[name]
}

func (r *Repo) MandatoryReviewers(f *domain.Folder, d *domain.Document, u *domain.User) domain.Assignees {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reviewers[f.ID]
}

func (r *Repo) MandatoryApprovers(f *domain.Folder, d *domain.Document, u *domain.User) domain.Assignees {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.approvers[f.ID]
}

func (r *Repo) MandatoryWorkflows(u *domain.User) []*domain.Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.workflows[u.ID]
}

// SetMandatoryReviewers configures the reviewer set derived for new
// versions below a folder.
func (r *Repo) SetMandatoryReviewers(f *domain.Folder, a domain.Assignees) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviewers[f.ID] = a
}

// SetMandatoryApprovers configures the approver set derived for new
// versions below a folder.
func (r *Repo) SetMandatoryApprovers(f *domain.Folder, a domain.Assignees) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approvers[f.ID] = a
}

// SetMandatoryWorkflows configures a user's workflow templates.
func (r *Repo) SetMandatoryWorkflows(u *domain.User, w []*domain.Workflow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[u.ID] = w
}

func (r *Repo) UsedDiskSpace(u *domain.User) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, doc := range r.documents {
		if doc.Owner == nil || doc.Owner.ID != u.ID {
			continue
		}
		for _, v := range doc.Versions {
			total += r.contentSizeLocked(v)
		}
	}
	return total
}
