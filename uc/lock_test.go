package uc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockDocument(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "bytes")

	lock, resp := f.s.Lock(f.admin, "/report.txt", 0)
	assert.Equal(t, 200, resp.Status)
	require.NotNil(t, lock)
	assert.Equal(t, "exclusive", lock.Scope)
	assert.Equal(t, "write", lock.Type)
	assert.Equal(t, "admin", lock.Owner)
	assert.True(t, strings.HasPrefix(lock.Token, "opaquelocktoken:"))
	assert.Equal(t, f.admin.User, doc.LockedBy)
}

func TestLockMissingTarget(t *testing.T) {
	f := newFixture(t)

	lock, resp := f.s.Lock(f.admin, "/nosuch.txt", 0)
	assert.Equal(t, 200, resp.Status)
	assert.Nil(t, lock)
}

func TestLockFolderDepthInfinity(t *testing.T) {
	f := newFixture(t)

	f.mkcol(t, f.admin, "/projects")

	_, resp := f.s.Lock(f.admin, "/projects/", 1)
	assert.Equal(t, 409, resp.Status)
}

func TestLockHeldByOther(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.admin, "/report.txt", "bytes")

	_, resp := f.s.Lock(f.admin, "/report.txt", 0)
	require.Equal(t, 200, resp.Status)

	_, resp = f.s.Lock(f.joe, "/report.txt", 0)
	assert.Equal(t, 409, resp.Status)
}

func TestCheckLock(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.admin, "/report.txt", "bytes")
	assert.Nil(t, f.s.CheckLock(f.joe, "/report.txt"), "unlocked document")

	_, resp := f.s.Lock(f.admin, "/report.txt", 0)
	require.Equal(t, 200, resp.Status)

	assert.Nil(t, f.s.CheckLock(f.admin, "/report.txt"), "holder passes its own lock")

	info := f.s.CheckLock(f.joe, "/report.txt")
	require.NotNil(t, info)
	assert.Equal(t, "admin", info.Owner)
	assert.Equal(t, "exclusive", info.Scope)
}

func TestLockBlocksForeignWrites(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "bytes")

	_, resp := f.s.Lock(f.admin, "/report.txt", 0)
	require.Equal(t, 200, resp.Status)

	resp = f.s.Put(f.joe, "/report.txt", strings.NewReader("other bytes"))
	assert.Equal(t, 409, resp.Status)
	assert.Len(t, doc.Versions, 1)

	// the holder still writes
	resp = f.s.Put(f.admin, "/report.txt", strings.NewReader("other bytes"))
	assert.Equal(t, 201, resp.Status)
	assert.Len(t, doc.Versions, 2)
}

func TestUnlock(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "bytes")

	_, resp := f.s.Lock(f.admin, "/report.txt", 0)
	require.Equal(t, 200, resp.Status)

	resp = f.s.Unlock(f.admin, "/report.txt", 0)
	assert.Equal(t, 204, resp.Status)
	assert.Nil(t, doc.LockedBy)
	assert.Nil(t, f.s.CheckLock(f.joe, "/report.txt"))
}

func TestUnlockMissingTarget(t *testing.T) {
	f := newFixture(t)

	resp := f.s.Unlock(f.admin, "/nosuch.txt", 0)
	assert.Equal(t, 204, resp.Status)
}
