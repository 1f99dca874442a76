package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rsc.io/pdf"

	"uxlab/internal/modules/study/domain"
	apperrors "uxlab/internal/platform/errors"
)

type PDFDocReader struct{}

func NewPDFDocReader() *PDFDocReader {
	return &PDFDocReader{}
}

func (r *PDFDocReader) Read(_ context.Context, path string) (domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return domain.Document{}, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, path)
	}
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, doc.NumPage())
	for n := 1; n <= doc.NumPage(); n++ {
		page := doc.Page(n)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		if len(parts) > 0 {
			pages = append(pages, strings.Join(parts, " "))
		}
	}

	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))
	return domain.Document{
		Title:  title,
		Body:   strings.Join(pages, "\n\n"),
		Format: domain.DocumentPDF,
	}, nil
}
