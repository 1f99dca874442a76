package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"uxlab/internal/modules/study/domain"
	apperrors "uxlab/internal/platform/errors"
	"uxlab/internal/platform/markdown"
)

type MarkdownDocReader struct{}

func NewMarkdownDocReader() *MarkdownDocReader {
	return &MarkdownDocReader{}
}

func (r *MarkdownDocReader) Read(_ context.Context, path string) (domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Document{}, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, path)
		}
		return domain.Document{}, fmt.Errorf("read markdown document: %w", err)
	}

	meta, body, err := markdown.SplitFrontmatter(string(raw))
	if err != nil {
		return domain.Document{}, fmt.Errorf("split %s: %w", filepath.Base(path), err)
	}
	title := markdown.StringField(meta, "title")
	if title == "" {
		name := filepath.Base(path)
		title = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return domain.Document{Title: title, Body: body, Format: domain.DocumentMarkdown}, nil
}
