package corpus

import (
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractTextReader extracts the plain text of every readable page of a
// PDF, pages separated by newlines. Unreadable pages are skipped.
func ExtractTextReader(r io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", err
	}
	return extractPages(pdfReader), nil
}

func extractPages(r *pdf.Reader) string {
	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String()
}

// ReadPDF builds a corpus from a PDF, treating every extracted text line
// as one sentence.
func ReadPDF(r io.ReaderAt, size int64) (*Corpus, error) {
	text, err := ExtractTextReader(r, size)
	if err != nil {
		return nil, err
	}
	return Read(strings.NewReader(text))
}

func loadPDF(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadPDF(f, info.Size())
}
