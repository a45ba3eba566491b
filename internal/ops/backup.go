// Package ops backs up and restores the service's JSON record stores.
// Archives are plain tar.gz files with a manifest carrying per-file SHA-256
// checksums, so a restore (or a drill) can verify integrity end to end.
package ops

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const manifestName = "manifest.json"

// StoreFiles are the record store files the server persists.
var StoreFiles = []string{"users.json", "tasks.json", "time_entries.json"}

type Manifest struct {
	Service   string            `json:"service"`
	CreatedAt time.Time         `json:"created_at"`
	Checksums map[string]string `json:"checksums"`
}

// Backup archives the known store files from dataDir into archivePath.
// Missing store files are skipped; an empty data dir yields an archive
// containing only the manifest.
func Backup(dataDir, archivePath string) (Manifest, error) {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return Manifest{}, fmt.Errorf("dataDir and archivePath are required")
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return Manifest{}, err
	}

	man := Manifest{
		Service:   "thirdangle",
		CreatedAt: time.Now().UTC(),
		Checksums: map[string]string{},
	}

	files := map[string][]byte{}
	for _, name := range StoreFiles {
		b, err := os.ReadFile(filepath.Join(dataDir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Manifest{}, err
		}
		files[name] = b
		man.Checksums[name] = checksum(b)
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	manBytes, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := writeTarFile(tw, manifestName, manBytes, man.CreatedAt); err != nil {
		return Manifest{}, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeTarFile(tw, name, files[name], man.CreatedAt); err != nil {
			return Manifest{}, err
		}
	}

	return man, nil
}

// Restore extracts a backup archive into targetDir after verifying every
// file against the manifest checksums.
func Restore(archivePath, targetDir string) (Manifest, error) {
	man, files, err := readArchive(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	if err := verify(man, files); err != nil {
		return Manifest{}, err
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Manifest{}, err
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(targetDir, name), b, 0o644); err != nil {
			return Manifest{}, err
		}
	}
	return man, nil
}

// Drill verifies an archive without touching any data directory.
func Drill(archivePath string) (Manifest, error) {
	man, files, err := readArchive(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	return man, verify(man, files)
}

func readArchive(archivePath string) (Manifest, map[string][]byte, error) {
	f, err := os.Open(filepath.Clean(strings.TrimSpace(archivePath)))
	if err != nil {
		return Manifest{}, nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Manifest{}, nil, err
	}
	defer gz.Close()

	var man Manifest
	haveManifest := false
	files := map[string][]byte{}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Manifest{}, nil, err
		}

		name := filepath.Base(hdr.Name)
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tr); err != nil {
			return Manifest{}, nil, err
		}

		if name == manifestName {
			if err := json.Unmarshal(buf.Bytes(), &man); err != nil {
				return Manifest{}, nil, fmt.Errorf("parse manifest: %w", err)
			}
			haveManifest = true
			continue
		}
		files[name] = buf.Bytes()
	}

	if !haveManifest {
		return Manifest{}, nil, fmt.Errorf("archive has no %s", manifestName)
	}
	return man, files, nil
}

func verify(man Manifest, files map[string][]byte) error {
	for name, want := range man.Checksums {
		b, ok := files[name]
		if !ok {
			return fmt.Errorf("archive missing %s listed in manifest", name)
		}
		if got := checksum(b); got != want {
			return fmt.Errorf("checksum mismatch for %s", name)
		}
	}
	for name := range files {
		if _, ok := man.Checksums[name]; !ok {
			return fmt.Errorf("archive contains %s not listed in manifest", name)
		}
	}
	return nil
}

func writeTarFile(tw *tar.Writer, name string, b []byte, modTime time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(b)),
		ModTime: modTime,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(b)
	return err
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
