package uc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/memrepo"
	"github.com/fbrnila/go-dms-dav/pages"
	"github.com/fbrnila/go-dms-dav/pathinfo"
	"github.com/fbrnila/go-dms-dav/uc"
)

type fixture struct {
	repo     *memrepo.Repo
	informer uc.PathInformer
	s        uc.Interactor
	admin    *uc.Caller
	joe      *uc.Caller
}

func newFixture(t *testing.T, mutate ...func(*domain.ServerConfig)) *fixture {
	t.Helper()

	cfg := domain.ServerConfig{
		Naming:                domain.NameByDocument,
		WorkflowMode:          domain.WorkflowTraditional,
		DefaultDocPosition:    domain.DocPositionEnd,
		InitialDocumentStatus: domain.StatusReleased,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	repo := memrepo.New(t.TempDir())
	admin := repo.AddUser(&domain.User{Login: "admin", FullName: "Administrator", Admin: true})
	joe := repo.AddUser(&domain.User{Login: "joe", FullName: "Joe User"})

	namer := pathinfo.NewNamer(cfg.Naming, repo)
	informer := pathinfo.New(repo, namer)
	s := uc.NewInteractor(cfg, repo, informer, namer, nil, pages.New(), nil)

	return &fixture{
		repo:     repo,
		informer: informer,
		s:        s,
		admin:    &uc.Caller{User: admin},
		joe:      &uc.Caller{User: joe},
	}
}

func (f *fixture) put(t *testing.T, c *uc.Caller, path, content string) *domain.Document {
	t.Helper()
	resp := f.s.Put(c, path, strings.NewReader(content))
	require.Equal(t, 201, resp.Status, "PUT %s: %s", path, resp.Detail)

	node, err := f.informer.Lookup(path)
	require.NoError(t, err)
	doc, ok := node.(*domain.Document)
	require.True(t, ok)
	return doc
}

func (f *fixture) mkcol(t *testing.T, c *uc.Caller, path string) *domain.Folder {
	t.Helper()
	resp := f.s.MkCol(c, path, false)
	require.Equal(t, 201, resp.Status, "MKCOL %s: %s", path, resp.Detail)

	node, err := f.informer.Lookup(path + "/")
	require.NoError(t, err)
	folder, ok := node.(*domain.Folder)
	require.True(t, ok)
	return folder
}
