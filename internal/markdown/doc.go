// Package markdown parses front matter and renders plain-dialect markdown to
// HTML with GitHub-flavoured extensions and class-based syntax highlighting.
package markdown
