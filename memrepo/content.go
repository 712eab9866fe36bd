package memrepo

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fbrnila/go-dms-dav/domain"
)

func (r *Repo) ContentPath(v *domain.ContentVersion) string {
	return filepath.Join(r.contentDir, v.StoredPath)
}

func (r *Repo) ContentSize(v *domain.ContentVersion) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.contentSizeLocked(v)
}

func (r *Repo) contentSizeLocked(v *domain.ContentVersion) int64 {
	stat, err := os.Stat(filepath.Join(r.contentDir, v.StoredPath))
	if err != nil {
		// a missing backing file reads as empty, never as an error
		return 0
	}
	return stat.Size()
}

func (r *Repo) OpenContent(v *domain.ContentVersion) (io.ReadCloser, error) {
	return os.Open(r.ContentPath(v))
}

// ChecksumFile hashes a file the same way stored versions are hashed.
func (r *Repo) ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// storeContent copies a source file into the content directory under a
// fresh name and returns the stored name and checksum.
func (r *Repo) storeContent(src string) (stored, checksum string, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	if err := os.MkdirAll(r.contentDir, 0o755); err != nil {
		return "", "", err
	}

	stored = uuid.NewString()
	out, err := os.Create(filepath.Join(r.contentDir, stored))
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		os.Remove(out.Name())
		return "", "", err
	}
	return stored, hex.EncodeToString(h.Sum(nil)), nil
}

func (r *Repo) removeContent(v *domain.ContentVersion) {
	os.Remove(filepath.Join(r.contentDir, v.StoredPath))
}
