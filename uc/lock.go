package uc

import (
	"github.com/google/uuid"

	"github.com/fbrnila/go-dms-dav/domain"
)

// LockResult is what the dispatcher renders into the lockdiscovery
// answer of a granted LOCK.
type LockResult struct {
	Owner string
	Scope string
	Type  string
	Token string

	// Timeout is reported as indefinite (0).
	Timeout int64
}

// LockInfo describes an active foreign lock found by the pre-mutation
// probe.
type LockInfo struct {
	Type  string
	Scope string
	Depth int
	Owner string
	Token string
}

// Lock takes the exclusive per-document lock for the caller. A path
// that resolves to nothing still answers 200 without creating anything
// (create-on-lock convention); folders are never lockable.
func (s Interactor) Lock(c *Caller, path string, depth int) (*LockResult, *Response) {
	s.logger.Info("LOCK:", path)

	obj, err := s.pathInformer.Lookup(path)
	if err != nil {
		return nil, Respond(200)
	}

	// recursive locks on directories not supported
	if _, ok := obj.(*domain.Folder); ok && depth != 0 {
		return nil, Respond(409)
	}

	if s.repo.AccessMode(obj, c.User) < domain.AccessReadWrite {
		s.logger.Err("LOCK: access forbidden")
		return nil, Respond(403)
	}

	if err := s.repo.Lock(obj, c.User); err != nil {
		return nil, Respond(409)
	}

	return &LockResult{
		Owner:   c.User.Login,
		Scope:   "exclusive",
		Type:    "write",
		Token:   "opaquelocktoken:" + uuid.NewString(),
		Timeout: 0,
	}, Respond(200)
}

// Unlock clears the caller's lock. Unresolved paths answer 204 so the
// operation stays idempotent.
func (s Interactor) Unlock(c *Caller, path string, depth int) *Response {
	s.logger.Info("UNLOCK:", path)

	obj, err := s.pathInformer.Lookup(path)
	if err != nil {
		return Respond(204)
	}

	if _, ok := obj.(*domain.Folder); ok && depth != 0 {
		return Respond(409)
	}

	if s.repo.AccessMode(obj, c.User) < domain.AccessReadWrite {
		s.logger.Err("UNLOCK: access forbidden")
		return Respond(403)
	}

	if err := s.repo.Unlock(obj, c.User); err != nil {
		return Respond(409)
	}
	return Respond(204)
}

// CheckLock is the probe consulted before mutating verbs. It reports
// an active lock only when the target is a document locked by someone
// other than the caller.
func (s Interactor) CheckLock(c *Caller, path string) *LockInfo {
	s.logger.Info("checkLock: path=", path)

	obj, err := s.pathInformer.Lookup(path)
	if err != nil {
		s.logger.Info("checkLock: object not found")
		return nil
	}

	doc, ok := obj.(*domain.Document)
	if !ok {
		// folders cannot be locked
		s.logger.Info("checkLock: object is a folder")
		return nil
	}

	if doc.LockedBy == nil || doc.LockedBy.Login == c.User.Login {
		s.logger.Info("checkLock: object is not locked")
		return nil
	}

	s.logger.Info("checkLock: object is locked by", doc.LockedBy.Login)
	return &LockInfo{
		Type:  "write",
		Scope: "exclusive",
		Depth: 0,
		Owner: doc.LockedBy.Login,
		// must be non-empty for clients that echo the token
		Token: "opaquelocktoken:" + uuid.NewString(),
	}
}
