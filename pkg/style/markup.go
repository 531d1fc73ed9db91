package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders inline tags like [conflict]...[/conflict] into
// styled terminal text. Output that goes to a non-terminal strips the
// tags instead, so the same message string serves both formats.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser knowing every tag in the default
// style set
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}

	for tag, s := range map[string]lipgloss.Style{
		"title":     TitleStyle,
		"subtitle":  SubtitleStyle,
		"success":   SuccessStyle,
		"error":     ErrorStyle,
		"warning":   WarningStyle,
		"info":      InfoStyle,
		"code":      CodeStyle,
		"path":      PathStyle,
		"muted":     MutedStyle,
		"bold":      lipgloss.NewStyle().Bold(true),
		"italic":    lipgloss.NewStyle().Italic(true),
		"underline": lipgloss.NewStyle().Underline(true),

		// Outcome tags
		"move":      MoveStyle,
		"duplicate": DuplicateStyle,
		"conflict":  ConflictStyle,
	} {
		p.AddStyle(tag, s)
	}

	return p
}

// AddStyle registers a tag and the style it renders with
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`\[` + tag + `\](.*?)\[/` + tag + `\]`)
}

// Render replaces every tagged span with its styled content. Nested
// tags are resolved inner-first by rendering until the text stops
// changing; unknown tags are left alone.
func (p *MarkupParser) Render(text string) string {
	result := text

	for {
		previous := result

		for tag, pattern := range p.patterns {
			s := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return s.Render(submatch[1])
			})
		}

		if result == previous {
			return result
		}
	}
}

// StripTags removes every known tag, leaving the bare content
func (p *MarkupParser) StripTags(text string) string {
	result := text
	for tag := range p.styles {
		result = strings.ReplaceAll(result, "["+tag+"]", "")
		result = strings.ReplaceAll(result, "[/"+tag+"]", "")
	}
	return result
}

var defaultParser = NewMarkupParser()

// Render processes text with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// StripTags removes known tags with the default parser
func StripTags(text string) string {
	return defaultParser.StripTags(text)
}
