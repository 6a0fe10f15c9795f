package services

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/filex"
)

const maxMediaSize = 32 << 20

// MediaStore saves clips and images received from the backend under one
// directory so the player can open them.
type MediaStore struct {
	dir string
	now func() time.Time
}

func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir, now: time.Now}
}

func (m *MediaStore) Dir() string {
	return m.dir
}

// SaveBytes writes data under a timestamped variant of name.
func (m *MediaStore) SaveBytes(name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(m.dir, "")
	if err != nil {
		return "", err
	}

	p := filepath.Join(dir, m.stamp(name))
	if err := filex.WritePrivate(p, data); err != nil {
		return "", err
	}
	return p, nil
}

// Save copies at most maxMediaSize bytes from r.
func (m *MediaStore) Save(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxMediaSize+1))
	if err != nil {
		return "", fmt.Errorf("read media: %w", err)
	}
	if len(data) > maxMediaSize {
		return "", fmt.Errorf("media larger than %d bytes", maxMediaSize)
	}
	return m.SaveBytes(name, data)
}

func (m *MediaStore) stamp(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	return fmt.Sprintf("%s-%s%s", base, m.now().Format("20060102-150405.000"), ext)
}

// mediaName picks a file name for a media URL.
func mediaName(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return fallback
	}
	return name
}
