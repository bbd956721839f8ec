package markdown

import "strings"

// Block is a generated region delimited by marker comments. Text outside the
// markers belongs to the user and survives every rewrite.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's content in body, appending the block when body
// has none yet.
func (b Block) Replace(body, generated string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	block := b.Start + "\n" + generated + "\n" + b.End

	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(b.End):]
	}
	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Content returns the text between the markers, or "" when absent.
func (b Block) Content(body string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start < 0 || end <= start {
		return ""
	}
	return strings.Trim(body[start+len(b.Start):end], "\n")
}
