package vecstore

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/matsen/embeddings/internal/vector"
	_ "modernc.org/sqlite"
)

// schema is the layout of an SQLite vector store.
const schema = `
	-- One row per vocabulary word, vector stored as little-endian float32
	CREATE TABLE IF NOT EXISTS vectors (
		word TEXT PRIMARY KEY,
		vector BLOB NOT NULL
	);

	-- Store-level metadata (currently only "dim")
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// readSQLite reads every word vector from the store at path.
func readSQLite(path string) (*Vectors, error) {
	// sql.Open would silently create a missing database.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	var dimText string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'dim'`).Scan(&dimText); err != nil {
		return nil, fmt.Errorf("reading dimension: %w", err)
	}
	dim, err := strconv.Atoi(dimText)
	if err != nil || dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %q", dimText)
	}

	rows, err := db.Query(`SELECT word, vector FROM vectors ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	vecs := &Vectors{Dim: dim}
	seen := make(map[string]bool)
	for rows.Next() {
		var word string
		var blob []byte
		if err := rows.Scan(&word, &blob); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		vec, err := decodeBlob(blob, dim)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", word, err)
		}
		if err := vecs.add(seen, word, vec); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}
	return vecs, nil
}

// writeSQLite replaces the contents of the store at path with vecs.
func writeSQLite(path string, vecs *Vectors) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM vectors"); err != nil {
		return fmt.Errorf("clearing vectors table: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('dim', ?)`, strconv.Itoa(vecs.Dim)); err != nil {
		return fmt.Errorf("writing dimension: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO vectors (word, vector) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer stmt.Close()

	for i, word := range vecs.Words {
		if _, err := stmt.Exec(word, encodeBlob(vecs.Vectors[i])); err != nil {
			return fmt.Errorf("inserting %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func encodeBlob(v vector.Vector) []byte {
	blob := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(blob[4*i:], math.Float32bits(float32(x)))
	}
	return blob
}

func decodeBlob(blob []byte, dim int) (vector.Vector, error) {
	if len(blob) != 4*dim {
		return nil, fmt.Errorf("blob has %d bytes, want %d", len(blob), 4*dim)
	}
	v := make(vector.Vector, dim)
	for i := range v {
		v[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:])))
	}
	return v, nil
}
