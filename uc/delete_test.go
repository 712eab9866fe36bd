package uc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fbrnila/go-dms-dav/domain"
)

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.admin, "/report.txt", "bytes")

	resp := f.s.Delete(f.admin, "/report.txt")
	assert.Equal(t, 204, resp.Status)

	_, err := f.informer.Lookup("/report.txt")
	assert.Error(t, err)
}

func TestDeleteNonEmptyFolder(t *testing.T) {
	f := newFixture(t)

	f.mkcol(t, f.admin, "/projects")
	f.put(t, f.admin, "/projects/report.txt", "bytes")

	resp := f.s.Delete(f.admin, "/projects")
	assert.Equal(t, 409, resp.Status)

	resp = f.s.Delete(f.admin, "/projects/report.txt")
	assert.Equal(t, 204, resp.Status)

	resp = f.s.Delete(f.admin, "/projects")
	assert.Equal(t, 204, resp.Status)
}

func TestDeleteMissing(t *testing.T) {
	f := newFixture(t)

	resp := f.s.Delete(f.admin, "/nosuch.txt")
	assert.Equal(t, 404, resp.Status)
}

func TestDeleteRequiresFullControl(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "bytes")

	// the default grade is read-write, deleting needs full control
	resp := f.s.Delete(f.joe, "/report.txt")
	assert.Equal(t, 403, resp.Status)

	f.repo.SetAccess(doc, f.joe.User, domain.AccessAll)
	resp = f.s.Delete(f.joe, "/report.txt")
	assert.Equal(t, 204, resp.Status)
}
