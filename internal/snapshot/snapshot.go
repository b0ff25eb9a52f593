// Package snapshot writes and restores compressed, digest-checked copies of a
// closed database file.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Format tags the manifest layout.
const Format = "pagesql-snapshot/1"

var (
	ErrDigestMismatch = errors.New("snapshot: digest mismatch")
	ErrSizeMismatch   = errors.New("snapshot: size mismatch")
	ErrTargetExists   = errors.New("snapshot: target file exists")
	ErrBadManifest    = errors.New("snapshot: bad manifest")
)

// Manifest describes the raw database bytes inside a snapshot.
type Manifest struct {
	Format    string    `json:"format"`
	Source    string    `json:"source"`
	Size      int64     `json:"size"`
	Digest    string    `json:"blake3"`
	CreatedAt time.Time `json:"created_at"`
}

// ManifestPath is where the manifest of the snapshot at snapPath lives.
func ManifestPath(snapPath string) string { return snapPath + ".json" }

// Create compresses the database file at dbPath into outPath with xz and
// writes the manifest next to it. The database must not be open.
func Create(dbPath, outPath string) (*Manifest, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}

	m, err := compress(src, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close snapshot: %w", cerr)
	}
	if err != nil {
		_ = os.Remove(outPath)
		return nil, err
	}
	m.Source = filepath.Base(dbPath)

	if err := writeManifest(ManifestPath(outPath), m); err != nil {
		return nil, err
	}
	slog.Info("snapshot: created", "db", dbPath, "out", outPath, "size", m.Size, "blake3", m.Digest)
	return m, nil
}

func compress(src io.Reader, dst io.Writer) (*Manifest, error) {
	zw, err := xz.NewWriter(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(zw, h), src)
	if err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	return &Manifest{
		Format:    Format,
		Size:      n,
		Digest:    hex.EncodeToString(h.Sum(nil)),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func writeManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest that belongs to snapPath.
func ReadManifest(snapPath string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(snapPath))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	if m.Format != Format {
		return nil, fmt.Errorf("%w: format %q", ErrBadManifest, m.Format)
	}
	return &m, nil
}

// Restore decompresses snapPath into dbPath after checking the bytes against
// the manifest. The file is replaced atomically; an existing dbPath is only
// overwritten with force.
func Restore(snapPath, dbPath string, force bool) (*Manifest, error) {
	m, err := ReadManifest(snapPath)
	if err != nil {
		return nil, err
	}

	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrTargetExists, dbPath)
		}
	}

	in, err := os.Open(snapPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = in.Close() }()

	zr, err := xz.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dbPath), filepath.Base(dbPath)+".restore-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), zr)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if n != m.Size {
		cleanup()
		return nil, fmt.Errorf("%w: got %d bytes, manifest says %d", ErrSizeMismatch, n, m.Size)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != m.Digest {
		cleanup()
		return nil, fmt.Errorf("%w: got %s, manifest says %s", ErrDigestMismatch, got, m.Digest)
	}

	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}
	if err := os.Rename(tmpPath, dbPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("replace database: %w", err)
	}

	slog.Info("snapshot: restored", "snapshot", snapPath, "db", dbPath, "size", n)
	return m, nil
}
