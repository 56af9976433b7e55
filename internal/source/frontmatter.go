package source

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// parseFrontmatter extracts the YAML frontmatter block from a markdown
// document. A document without frontmatter yields an error; the canonical
// SKILL.md must carry name, description, and version metadata.
func parseFrontmatter(raw []byte) (map[string]interface{}, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(raw, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, fmt.Errorf("missing frontmatter")
	}

	return metaData, nil
}
