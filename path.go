package plink

import (
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Extensions of the three members of a PLINK binary fileset.
const (
	ExtFAM = ".fam"
	ExtBIM = ".bim"
	ExtBED = ".bed"
)

var compressedExtensions = []string{".gz", ".bz2", ".xz", ".zip", ".zz"}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return path, pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// BasePath strips a trailing .bed, .bim or .fam extension, so that any member
// of a fileset can be used to name the whole set. A compression suffix after
// the member extension, as in chr1.fam.gz, is stripped along with it.
func BasePath(path string) string {
	trimmed := trimCompression(path)

	switch filepath.Ext(trimmed) {
	case ExtBED, ExtBIM, ExtFAM:
		return strings.TrimSuffix(trimmed, filepath.Ext(trimmed))
	}

	return path
}

func trimCompression(path string) string {
	for _, z := range compressedExtensions {
		if strings.HasSuffix(path, z) {
			return strings.TrimSuffix(path, z)
		}
	}

	return path
}

// locateText returns the first of base+ext and its compressed variants that
// exists. If none does, base+ext is returned so the open reports it missing.
func locateText(base, ext string, client *storage.Client) string {
	candidates := []string{base + ext}
	for _, z := range compressedExtensions {
		candidates = append(candidates, base+ext+z)
	}

	for _, candidate := range candidates {
		if exists(candidate, client) {
			return candidate
		}
	}

	return base + ext
}

// resolve returns path unchanged if it already names a file with extension
// ext (optionally followed by a compression suffix). Otherwise ext is
// appended to the base path.
func resolve(path, ext string) string {
	if filepath.Ext(trimCompression(path)) == ext {
		return path
	}

	return BasePath(path) + ext
}
