package render

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/oremos-juntos/internal/theme"
)

// HighlightJSON pretty-prints data and highlights it with the given chroma
// style. Invalid JSON is highlighted as is.
func HighlightJSON(data []byte, style string) (template.HTML, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(data)
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, pretty.String())
	if err != nil {
		return template.HTML(template.HTMLEscapeString(pretty.String())), err
	}

	var buf bytes.Buffer
	if err := theme.GetFormatter().Format(&buf, s, iterator); err != nil {
		return template.HTML(template.HTMLEscapeString(pretty.String())), err
	}
	return template.HTML(buf.String()), nil
}
