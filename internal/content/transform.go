package content

import (
	"regexp"
	"strings"
)

// truncationNotice is appended when a document must be hard-truncated.
// It must stay under the 50-character reserve subtracted from the budget.
const truncationNotice = "\n\n[Content truncated to fit host size limit]"

var (
	// activationRe matches the source-format activation sentence that tells
	// the originating host when to load the skill. Other hosts have their
	// own activation conventions, so the sentence is removed wholesale.
	activationRe = regexp.MustCompile(`(?mi)^use this skill when[^\n]*\n?`)

	// argumentsRe matches the source-format parameterized input token.
	argumentsRe = regexp.MustCompile(`\$ARGUMENTS`)

	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// StripFrontmatter removes a leading YAML frontmatter block (an opening
// "---" line, metadata lines, and a closing "---" line) if present.
// Delimiter-looking text after the first line is left untouched.
func StripFrontmatter(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return text
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			rest := lines[i+1:]
			// Drop a single blank line separating frontmatter from body.
			if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
				rest = rest[1:]
			}
			return strings.Join(rest, "\n")
		}
	}

	// Opening delimiter without a closing one: not valid frontmatter.
	return text
}

// StripDirectives removes source-host-specific inline directives: the
// activation sentence and the $ARGUMENTS placeholder token. Surrounding
// prose is preserved.
func StripDirectives(text string) string {
	text = activationRe.ReplaceAllString(text, "")
	return argumentsRe.ReplaceAllString(text, "")
}

// ConvertArguments replaces the source-format input placeholder with the
// equivalent token of a target format (e.g., "{{{ input }}}").
func ConvertArguments(text, replacement string) string {
	return argumentsRe.ReplaceAllString(text, replacement)
}

// TruncateToLimit reduces text to at most maxChars characters. Reduction
// passes run in order, each operating on the previous pass's output, and
// stop as soon as the result fits: fenced code blocks are removed first,
// then HTML comment blocks, then trailing top-level sections one at a
// time, and finally the text is hard-truncated with a fixed notice.
// Text already within budget is returned unchanged.
func TruncateToLimit(text string, maxChars int) string {
	if len([]rune(text)) <= maxChars {
		return text
	}

	text = removeFencedBlocks(text)
	if len([]rune(text)) <= maxChars {
		return text
	}

	text = commentRe.ReplaceAllString(text, "")
	if len([]rune(text)) <= maxChars {
		return text
	}

	text = dropTrailingSections(text, maxChars)
	if len([]rune(text)) <= maxChars {
		return text
	}

	runes := []rune(text)
	return string(runes[:maxChars-50]) + truncationNotice
}

// removeFencedBlocks drops fenced code blocks, fence lines included.
// Any line whose trimmed form starts with ``` toggles fence state, which
// also handles fences nested inside example blocks.
func removeFencedBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// dropTrailingSections removes top-level "## " sections from the end of
// the document until the remainder fits or only one section is left.
func dropTrailingSections(text string, maxChars int) string {
	for len([]rune(text)) > maxChars {
		idx := strings.LastIndex(text, "\n## ")
		if idx <= 0 {
			return text
		}
		text = strings.TrimRight(text[:idx], "\n") + "\n"
	}
	return text
}
