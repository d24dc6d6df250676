// Package vecstore reads and writes serialized word vector files.
//
// Supported formats are chosen by file extension:
//
//	.txt, .vec        word2vec / GloVe text (optional "count dim" header)
//	.bin, .emb        word2vec binary
//	.db, .sqlite      SQLite word table
package vecstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/embeddings/internal/vector"
)

// ErrLoad is returned (wrapped) for every failure to read a vector file.
var ErrLoad = errors.New("failed to load embedding")

// Format identifies a vector file format.
type Format string

const (
	FormatText   Format = "text"
	FormatBinary Format = "binary"
	FormatSQLite Format = "sqlite"
)

// DefaultExtension is the extension matched when an ensemble is loaded from a
// directory prefix.
const DefaultExtension = ".emb"

// Vectors is an in-memory vocabulary with one raw (unnormalized) vector per word.
type Vectors struct {
	Words   []string        // Words in file order
	Vectors []vector.Vector // Vectors[i] belongs to Words[i]
	Dim     int
}

// Len returns the number of words.
func (v *Vectors) Len() int {
	return len(v.Words)
}

// add appends a word, rejecting duplicates and dimension mismatches.
func (v *Vectors) add(seen map[string]bool, word string, vec vector.Vector) error {
	if word == "" {
		return fmt.Errorf("empty word")
	}
	if seen[word] {
		return fmt.Errorf("duplicate word %q", word)
	}
	if v.Dim == 0 {
		v.Dim = len(vec)
	}
	if len(vec) != v.Dim {
		return fmt.Errorf("word %q has %d dimensions, want %d", word, len(vec), v.Dim)
	}
	seen[word] = true
	v.Words = append(v.Words, word)
	v.Vectors = append(v.Vectors, vec)
	return nil
}

// Validate checks the invariants every loaded store must satisfy.
func (v *Vectors) Validate() error {
	if len(v.Words) != len(v.Vectors) {
		return fmt.Errorf("%d words but %d vectors", len(v.Words), len(v.Vectors))
	}
	if len(v.Words) == 0 {
		return fmt.Errorf("no vectors")
	}
	seen := make(map[string]bool, len(v.Words))
	for i, w := range v.Words {
		if seen[w] {
			return fmt.Errorf("duplicate word %q", w)
		}
		seen[w] = true
		if len(v.Vectors[i]) != v.Dim {
			return fmt.Errorf("word %q has %d dimensions, want %d", w, len(v.Vectors[i]), v.Dim)
		}
	}
	return nil
}

// DetectFormat returns the format implied by the path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".vec":
		return FormatText, nil
	case ".bin", ".emb":
		return FormatBinary, nil
	case ".db", ".sqlite":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unrecognized vector file extension %q", filepath.Ext(path))
	}
}

// Load reads the vector file at path.
func Load(path string) (*Vectors, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	var vecs *Vectors
	switch format {
	case FormatSQLite:
		vecs, err = readSQLite(path)
	default:
		vecs, err = readFile(path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	if err := vecs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return vecs, nil
}

func readFile(path string, format Format) (*Vectors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vector file: %w", err)
	}
	defer f.Close()

	if format == FormatBinary {
		return ReadBinary(f)
	}
	return ReadText(f)
}

// Save writes vecs to path in the format implied by its extension.
// Text and binary files are written to a temp file and renamed into place.
func Save(path string, vecs *Vectors) error {
	if err := vecs.Validate(); err != nil {
		return fmt.Errorf("validating vectors: %w", err)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if format == FormatSQLite {
		return writeSQLite(path, vecs)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if format == FormatBinary {
		err = WriteBinary(f, vecs)
	} else {
		err = WriteText(f, vecs)
	}
	if err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("encoding vectors: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
