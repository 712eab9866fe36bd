package memrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/memrepo"
	"github.com/fbrnila/go-dms-dav/uc"
)

func seed(t *testing.T, repo *memrepo.Repo) (*domain.User, *domain.Folder, *domain.Document) {
	t.Helper()

	owner := repo.AddUser(&domain.User{Login: "admin", FullName: "Administrator", Admin: true})
	folder, err := repo.AddFolder(repo.RootFolder(), "docs", owner)
	require.NoError(t, err)

	scratch := filepath.Join(t.TempDir(), "upload")
	require.NoError(t, os.WriteFile(scratch, []byte("contents"), 0o644))

	doc, err := repo.AddDocument(uc.AddDocumentRequest{
		Folder:           folder,
		Name:             "report.txt",
		Owner:            owner,
		File:             scratch,
		OriginalFilename: "report.txt",
		FileType:         ".txt",
		MimeType:         "text/plain",
		InitialStatus:    domain.StatusReleased,
	})
	require.NoError(t, err)
	return owner, folder, doc
}

func TestSnapshotRoundTrip(t *testing.T) {
	contentDir := t.TempDir()
	repo := memrepo.New(contentDir)
	owner, folder, doc := seed(t, repo)
	require.NoError(t, repo.SetComment(doc, "important"))
	repo.SetAccess(folder, owner, domain.AccessAll)

	snap := repo.Export()

	restored := memrepo.New(contentDir)
	require.NoError(t, restored.Import(snap))

	user, err := restored.UserByLogin("admin")
	require.NoError(t, err)
	assert.True(t, user.Admin)

	sub := restored.FolderByName("docs", restored.RootFolder())
	require.NotNil(t, sub)
	assert.Equal(t, folder.ID, sub.ID)
	assert.Equal(t, "admin", sub.Owner.Login)

	got := restored.DocumentByName("report.txt", sub)
	require.NotNil(t, got)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "important", got.Comment)
	assert.Equal(t, sub, got.Folder)

	lc := got.LatestContent()
	assert.Equal(t, 1, lc.Version)
	assert.Equal(t, doc.LatestContent().Checksum, lc.Checksum)
	assert.Equal(t, "admin", lc.Author.Login)

	// the stored content file is shared via the content dir
	stream, err := restored.OpenContent(lc)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, domain.AccessAll, restored.AccessMode(sub, user))
}

func TestOnMutateFires(t *testing.T) {
	repo := memrepo.New(t.TempDir())

	var seen int
	repo.OnMutate(func(s *memrepo.Snapshot) { seen++ })

	owner := repo.AddUser(&domain.User{Login: "admin"})
	_, err := repo.AddFolder(repo.RootFolder(), "docs", owner)
	require.NoError(t, err)

	assert.Equal(t, 2, seen)
}

func TestRemoveFolderRefusesNonEmpty(t *testing.T) {
	repo := memrepo.New(t.TempDir())
	_, folder, _ := seed(t, repo)

	assert.ErrorIs(t, repo.RemoveFolder(folder), domain.ErrNotEmpty)
}

func TestLockOwnership(t *testing.T) {
	repo := memrepo.New(t.TempDir())
	owner, _, doc := seed(t, repo)
	other := repo.AddUser(&domain.User{Login: "joe"})

	require.NoError(t, repo.Lock(doc, owner))
	assert.ErrorIs(t, repo.Lock(doc, other), domain.ErrLocked)
	assert.ErrorIs(t, repo.Unlock(doc, other), domain.ErrLocked)
	require.NoError(t, repo.Unlock(doc, owner))
	require.NoError(t, repo.Lock(doc, other))
}
