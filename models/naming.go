package models

import "regexp"

// Naming rules for contexts, tags, titles, and dependency references.
const (
	// ContextNamePattern constrains context names to lowercase
	// kebab-case starting with a letter.
	ContextNamePattern = `^[a-z][a-z0-9-]*$`

	// TagNamePattern constrains tags to lowercase letters, digits,
	// and hyphens.
	TagNamePattern = `^[a-z0-9-]+$`

	// TitleTagPattern is the advisory title convention: an uppercase
	// bracket tag followed by a space and the summary, e.g.
	// "[BACKEND] Add retry logic". Titles that do not match are
	// accepted with a logged warning.
	TitleTagPattern = `^\[[A-Z][A-Z0-9-]*\] .+`

	// DependencyRefPattern is the cross-task reference form
	// "context:taskID" or "context:taskID:subtaskID".
	DependencyRefPattern = `^[a-z][a-z0-9-]*:[0-9]+(:[0-9]+)?$`
)

var (
	contextNameRe   = regexp.MustCompile(ContextNamePattern)
	tagNameRe       = regexp.MustCompile(TagNamePattern)
	titleTagRe      = regexp.MustCompile(TitleTagPattern)
	dependencyRefRe = regexp.MustCompile(DependencyRefPattern)
)

// IsValidContextName reports whether name is a legal context name.
func IsValidContextName(name string) bool {
	return contextNameRe.MatchString(name)
}

// IsValidTagName reports whether tag is a legal tag.
func IsValidTagName(tag string) bool {
	return tagNameRe.MatchString(tag)
}

// HasTitleTag reports whether title follows the "[TAG] summary"
// convention. Violations are advisory only.
func HasTitleTag(title string) bool {
	return titleTagRe.MatchString(title)
}

// IsValidDependencyRef reports whether ref is a well-formed cross-task
// reference.
func IsValidDependencyRef(ref string) bool {
	return dependencyRefRe.MatchString(ref)
}
