package content

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/phanxgames/hero"
)

// NewRichTextRenderer returns a renderer that turns an HTML rich-text
// document into Markdown, which reads well as plain display text.
// Empty output falls back to the source document.
func NewRichTextRenderer() hero.RichTextRenderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return func(doc string) (string, error) {
		if strings.TrimSpace(doc) == "" {
			return "", nil
		}
		out, err := conv.ConvertString(doc)
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return strings.TrimSpace(doc), nil
		}
		return out, nil
	}
}
