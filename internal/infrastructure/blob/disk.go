// Package blob provides the disk-backed proof-of-payment store. References
// are relative file names under the base directory, so they survive a base
// URL change.
package blob

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"edupay-backend/pkg/id"
)

type DiskStore struct {
	baseDir string
	baseURL string
}

func NewDiskStore(baseDir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Store(_ context.Context, data []byte, suggestedName string) (string, error) {
	name := id.NewID32()
	if ext := filepath.Ext(suggestedName); ext != "" && len(ext) <= 8 {
		name += ext
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// URLFor degrades to an empty URL on a malformed reference; it never fails the
// caller.
func (s *DiskStore) URLFor(ref string) string {
	if ref == "" || strings.Contains(ref, "/") || strings.Contains(ref, "..") {
		return ""
	}
	u, err := url.JoinPath(s.baseURL+"/", ref)
	if err != nil {
		return ""
	}
	return u
}
