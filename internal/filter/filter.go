// Package filter selects which test specifications run. A Filter is a
// pure predicate: it reads spec metadata and never touches world or
// runner state.
package filter

import "github.com/flintsteel/flintsteel/internal/spec"

// Filter holds the selection criteria for a run.
//
// Criteria of different kinds combine with AND: a spec must satisfy every
// configured kind. Within a multi-valued kind (tags, patterns) the values
// combine with OR. An empty filter matches everything.
type Filter struct {
	// Tags selects specs carrying at least one of these tags.
	Tags []string

	// NamePatterns selects specs whose name matches at least one glob
	// pattern ('*' and '?' wildcards, full-string match).
	NamePatterns []string

	// ExactName selects a single spec by exact, case-sensitive name.
	ExactName string
}

// All returns a filter that matches every spec.
func All() Filter {
	return Filter{}
}

// ByTags returns a filter selecting specs with any of the given tags.
func ByTags(tags ...string) Filter {
	return Filter{Tags: tags}
}

// ByName returns a filter selecting one spec by exact name.
func ByName(name string) Filter {
	return Filter{ExactName: name}
}

// ByPatterns returns a filter selecting specs by glob name patterns.
func ByPatterns(patterns ...string) Filter {
	return Filter{NamePatterns: patterns}
}

// WithTags adds tags to the filter.
func (f Filter) WithTags(tags ...string) Filter {
	f.Tags = append(f.Tags, tags...)
	return f
}

// WithPatterns adds name patterns to the filter.
func (f Filter) WithPatterns(patterns ...string) Filter {
	f.NamePatterns = append(f.NamePatterns, patterns...)
	return f
}

// WithExactName sets the exact-name criterion.
func (f Filter) WithExactName(name string) Filter {
	f.ExactName = name
	return f
}

// IsEmpty reports whether no criteria are set.
func (f Filter) IsEmpty() bool {
	return len(f.Tags) == 0 && len(f.NamePatterns) == 0 && f.ExactName == ""
}

// Matches reports whether the spec satisfies every configured criterion.
func (f Filter) Matches(s *spec.TestSpec) bool {
	if f.ExactName != "" && s.Name != f.ExactName {
		return false
	}

	if len(f.NamePatterns) > 0 {
		matched := false
		for _, pattern := range f.NamePatterns {
			if Match(pattern, s.Name) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Tags) > 0 {
		tagged := false
		for _, tag := range f.Tags {
			if s.HasTag(tag) {
				tagged = true
				break
			}
		}
		if !tagged {
			return false
		}
	}

	return true
}
