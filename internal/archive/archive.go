// Package archive packs skill bundles into tar.gz archives with an
// embedded manifest, and unpacks them with path traversal protection.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/model"
)

// FormatVersion identifies the archive layout.
const FormatVersion = "1"

// manifestName is the metadata entry written alongside the bundle files.
const manifestName = "skillpack-archive.json"

// Manifest describes a packed bundle archive.
type Manifest struct {
	FormatVersion string         `json:"format_version"`
	CreatedAt     time.Time      `json:"created_at"`
	Bundle        model.Manifest `json:"bundle"`
	Files         []FileEntry    `json:"files"`
}

// FileEntry records one file in the archive.
type FileEntry struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Pack writes the bundle as a tar.gz stream: every bundle file under a
// top-level directory named after the bundle, plus the archive manifest.
func Pack(b *model.Bundle, w io.Writer) (*Manifest, error) {
	gzWriter := gzip.NewWriter(w)
	defer gzWriter.Close()

	tarWriter := tar.NewWriter(gzWriter)
	defer tarWriter.Close()

	manifest := &Manifest{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Bundle:        b.Manifest,
	}

	for _, rel := range bundle.Files(b) {
		full := filepath.Join(b.Dir, filepath.FromSlash(rel))
		// #nosec G304 - rel comes from the loaded bundle inventory
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", rel, err)
		}

		sum := sha256.Sum256(data)
		entryName := path.Join(b.Name, rel)
		manifest.Files = append(manifest.Files, FileEntry{
			Path:   entryName,
			Size:   int64(len(data)),
			SHA256: hex.EncodeToString(sum[:]),
		})

		info, err := os.Stat(full)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", rel, err)
		}
		header := &tar.Header{
			Name:    entryName,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: info.ModTime(),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("failed to write tar header for %q: %w", rel, err)
		}
		if _, err := tarWriter.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", rel, err)
		}
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize archive manifest: %w", err)
	}
	header := &tar.Header{
		Name:    manifestName,
		Mode:    0o644,
		Size:    int64(len(manifestData)),
		ModTime: manifest.CreatedAt,
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return nil, fmt.Errorf("failed to write manifest header: %w", err)
	}
	if _, err := tarWriter.Write(manifestData); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifest, nil
}

// PackFile packs the bundle into a file at dest, creating parent
// directories as needed. Returns the archive manifest.
func PackFile(b *model.Bundle, dest string) (*Manifest, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return nil, err
	}
	// #nosec G304 - dest is provided by caller
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive %q: %w", dest, err)
	}
	defer f.Close()
	return Pack(b, f)
}

// DefaultArchiveName returns the conventional archive filename for a bundle.
func DefaultArchiveName(m model.Manifest) string {
	return fmt.Sprintf("%s-%s.tar.gz", m.Name, m.Version)
}

// Unpack extracts a packed bundle under targetDir and returns the
// archive manifest and the extracted bundle directory. Entries that
// would escape targetDir are rejected.
func Unpack(r io.Reader, targetDir string) (*Manifest, string, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)

	var manifest *Manifest
	var bundleDir string

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		data, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read entry %q: %w", header.Name, err)
		}

		if header.Name == manifestName {
			if err := json.Unmarshal(data, &manifest); err != nil {
				return nil, "", fmt.Errorf("failed to parse archive manifest: %w", err)
			}
			continue
		}

		clean, err := safeJoin(targetDir, header.Name)
		if err != nil {
			return nil, "", err
		}
		if bundleDir == "" {
			top := strings.SplitN(path.Clean(header.Name), "/", 2)[0]
			bundleDir = filepath.Join(targetDir, top)
		}

		if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
			return nil, "", err
		}
		// #nosec G306 - bundle documents are world-readable markdown
		if err := os.WriteFile(clean, data, 0o644); err != nil {
			return nil, "", fmt.Errorf("failed to extract %q: %w", header.Name, err)
		}
	}

	if manifest == nil {
		return nil, "", fmt.Errorf("archive has no %s entry", manifestName)
	}
	if bundleDir == "" {
		return nil, "", fmt.Errorf("archive contains no bundle files")
	}
	return manifest, bundleDir, nil
}

// UnpackFile extracts the archive at src under targetDir.
func UnpackFile(src, targetDir string) (*Manifest, string, error) {
	// #nosec G304 - src is provided by caller
	f, err := os.Open(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open archive %q: %w", src, err)
	}
	defer f.Close()
	return Unpack(f, targetDir)
}

// Inspect reads only the archive manifest without extracting files.
func Inspect(r io.Reader) (*Manifest, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Name != manifestName {
			continue
		}
		data, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive manifest: %w", err)
		}
		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse archive manifest: %w", err)
		}
		return &manifest, nil
	}
	return nil, fmt.Errorf("archive has no %s entry", manifestName)
}

// safeJoin joins an archive entry name onto base, rejecting absolute
// paths and traversal outside base.
func safeJoin(base, name string) (string, error) {
	clean := path.Clean(name)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return filepath.Join(base, filepath.FromSlash(clean)), nil
}
