package topics

// Renderer formats topic content for terminal display.
type Renderer interface {
	// Render takes raw content and the file extension it was loaded
	// from (".md", ".txt") and returns display-ready text.
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

// Render returns the content as-is.
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
