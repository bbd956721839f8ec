package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Split decodes the leading YAML frontmatter of content into meta and
// returns the remaining body. Content without frontmatter leaves meta
// untouched and returns ok=false.
func Split(content string, meta any) (body string, ok bool, err error) {
	if !strings.HasPrefix(content, separator) {
		return content, false, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return "", false, fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), meta); err != nil {
		return "", false, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len("\n"+separator):], true, nil
}

// Render encodes meta (a yaml-tagged struct or map) as frontmatter above body.
func Render(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
