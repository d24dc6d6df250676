package vecstore

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matsen/embeddings/internal/vector"
)

// MaxLineCapacity is the maximum buffer size for one line of a text vector file.
// 1MB fits 300-dimensional vectors with generous float formatting.
const MaxLineCapacity = 1024 * 1024

// MaxDim bounds the dimension a binary header may declare.
const MaxDim = 1 << 16

// ReadText reads word2vec text format. GloVe files, which omit the
// "count dim" header line, are accepted too.
func ReadText(r io.Reader) (*Vectors, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxLineCapacity)

	vecs := &Vectors{}
	seen := make(map[string]bool)
	declared := -1

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue // Skip empty lines
		}

		if lineNum == 1 && len(fields) == 2 {
			if count, dim, ok := parseHeader(fields); ok {
				declared = count
				vecs.Dim = dim
				continue
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected a word followed by values", lineNum)
		}

		vec := make(vector.Vector, len(fields)-1)
		for i, s := range fields[1:] {
			x, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing value %d: %w", lineNum, i+1, err)
			}
			vec[i] = x
		}
		if err := vecs.add(seen, fields[0], vec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vector file: %w", err)
	}
	if declared >= 0 && declared != vecs.Len() {
		return nil, fmt.Errorf("header declares %d words, found %d", declared, vecs.Len())
	}
	return vecs, nil
}

func parseHeader(fields []string) (count, dim int, ok bool) {
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	dim, err = strconv.Atoi(fields[1])
	if err != nil || dim <= 0 || count < 0 {
		return 0, 0, false
	}
	return count, dim, true
}

// WriteText writes vecs in word2vec text format with a header line.
func WriteText(w io.Writer, vecs *Vectors) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", vecs.Len(), vecs.Dim); err != nil {
		return err
	}
	for i, word := range vecs.Words {
		bw.WriteString(word)
		for _, x := range vecs.Vectors[i] {
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(x, 'g', -1, 32))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinary reads the word2vec binary format: a "count dim" text header,
// then for every word its bytes, a space, and dim little-endian float32s.
func ReadBinary(r io.Reader) (*Vectors, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	count, dim, ok := parseHeader(strings.Fields(header))
	if !ok {
		return nil, fmt.Errorf("malformed header %q", strings.TrimSpace(header))
	}
	if dim > MaxDim {
		return nil, fmt.Errorf("header declares dimension %d, limit is %d", dim, MaxDim)
	}

	vecs := &Vectors{Dim: dim}
	seen := make(map[string]bool, count)
	raw := make([]float32, dim)

	for i := 0; i < count; i++ {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("reading word %d: %w", i+1, err)
		}
		word = strings.TrimLeft(strings.TrimSuffix(word, " "), "\n")

		if err := binary.Read(br, binary.LittleEndian, raw); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("reading vector for %q: %w", word, err)
		}
		if err := vecs.add(seen, word, vector.FromFloat32(raw)); err != nil {
			return nil, err
		}
	}
	return vecs, nil
}

// WriteBinary writes vecs in word2vec binary format.
func WriteBinary(w io.Writer, vecs *Vectors) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", vecs.Len(), vecs.Dim); err != nil {
		return err
	}
	for i, word := range vecs.Words {
		bw.WriteString(word)
		bw.WriteByte(' ')
		if err := binary.Write(bw, binary.LittleEndian, vecs.Vectors[i].Float32()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
