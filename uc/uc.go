package uc

import (
	"github.com/fbrnila/go-dms-dav/domain"
)

// Caller is the request-scoped identity: the authenticated user plus
// the disk-usage snapshot taken at authentication time.
type Caller struct {
	User      *domain.User
	DiskUsage int64
}

// Interactor holds the per-verb handlers and their collaborators.
type Interactor struct {
	Config domain.ServerConfig

	logger       Debug
	repo         Repository
	pathInformer PathInformer
	namer        Namer
	notifier     Notifier
	renderer     IndexRenderer
}

// NewInteractor wires the verb handlers. A nil notifier or logger is
// replaced by a no-op.
func NewInteractor(config domain.ServerConfig, repo Repository, pathInformer PathInformer, namer Namer, notifier Notifier, renderer IndexRenderer, logger Debug) Interactor {
	if logger == nil {
		logger = nopLogger{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return Interactor{
		Config:       config,
		logger:       logger,
		repo:         repo,
		pathInformer: pathInformer,
		namer:        namer,
		notifier:     notifier,
		renderer:     renderer,
	}
}

// lookupRetry resolves a path, retrying with a trailing slash appended
// since the wire protocol does not reliably disambiguate folder vs.
// document addressing.
func (s Interactor) lookupRetry(path string) (domain.Node, error) {
	obj, err := s.pathInformer.Lookup(path)
	if err != nil {
		return s.pathInformer.Lookup(path + "/")
	}
	return obj, nil
}

type nopLogger struct{}

func (nopLogger) Debug(...interface{}) {}
func (nopLogger) Info(...interface{})  {}
func (nopLogger) Err(...interface{})   {}

type nopNotifier struct{}

func (nopNotifier) NewDocument(*domain.Document, *domain.User)      {}
func (nopNotifier) NewVersion(*domain.Document, *domain.User)       {}
func (nopNotifier) NewFolder(*domain.Folder, *domain.User)          {}
func (nopNotifier) Moved(domain.Node, *domain.Folder, *domain.User) {}
func (nopNotifier) Deleted(domain.Node, *domain.User)               {}
