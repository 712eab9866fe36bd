package memrepo

import (
	"strconv"

	"github.com/fbrnila/go-dms-dav/domain"
)

// nodeKey disambiguates folder and document ids in the access map.
func nodeKey(n domain.Node) string {
	switch n.(type) {
	case *domain.Folder:
		return "f" + strconv.Itoa(n.NodeID())
	default:
		return "d" + strconv.Itoa(n.NodeID())
	}
}

// AccessMode reports the caller's grade on a node: administrators hold
// full control everywhere, explicit grants win over the default grade.
func (r *Repo) AccessMode(n domain.Node, u *domain.User) domain.AccessMode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u == nil {
		return domain.AccessNone
	}
	if u.Admin {
		return domain.AccessAll
	}
	if grants, ok := r.access[nodeKey(n)]; ok {
		if mode, ok := grants[u.ID]; ok {
			return mode
		}
	}
	return r.defaultAccess
}

// SetAccess grants an explicit access grade on a node.
func (r *Repo) SetAccess(n domain.Node, u *domain.User, mode domain.AccessMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nodeKey(n)
	if r.access[key] == nil {
		r.access[key] = map[int]domain.AccessMode{}
	}
	r.access[key][u.ID] = mode
	r.mutated()
}

// SetDefaultAccess sets the grade applied when no explicit grant
// exists.
func (r *Repo) SetDefaultAccess(mode domain.AccessMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultAccess = mode
}
