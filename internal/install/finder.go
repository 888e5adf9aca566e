package install

import (
	"path/filepath"
	"strings"
)

type rootRule struct {
	predicate func(string) bool
	useParent bool
}

// RootFinder identifies a mod root from an ordered list of rules.
// Rules are tried in registration order and the first rule matching any file wins.
type RootFinder struct {
	rules  []rootRule
	strict bool
}

// NewRootFinder creates an empty finder
func NewRootFinder() *RootFinder {
	return &RootFinder{}
}

// Strict bounds GetRoot by the number of rules only. By default at most
// len(files) rules are attempted, so short file lists skip later rules.
func (f *RootFinder) Strict() *RootFinder {
	f.strict = true
	return f
}

// AddSearch adds a rule matching any path for which predicate returns true
func (f *RootFinder) AddSearch(predicate func(string) bool) *RootFinder {
	f.rules = append(f.rules, rootRule{predicate: predicate})
	return f
}

// AddFileRoot adds a rule matching files whose base name contains name
func (f *RootFinder) AddFileRoot(name string, ignoreCase, useParent bool) *RootFinder {
	match := baseContains(name, ignoreCase)
	f.rules = append(f.rules, rootRule{
		predicate: func(p string) bool { return match(p) && !IsDirEntry(p) },
		useParent: useParent,
	})
	return f
}

// AddFolderRoot adds a rule matching entries whose base name contains name
func (f *RootFinder) AddFolderRoot(name string, ignoreCase, useParent bool) *RootFinder {
	f.rules = append(f.rules, rootRule{predicate: baseContains(name, ignoreCase), useParent: useParent})
	return f
}

// Len returns the number of registered rules
func (f *RootFinder) Len() int {
	return len(f.rules)
}

// GetRoot returns the first match of the first matching rule
func (f *RootFinder) GetRoot(files []string) (string, bool) {
	attempts := len(f.rules)
	if !f.strict {
		attempts = min(max(len(files), 1), len(f.rules))
	}

	for i := 0; i < attempts; i++ {
		rule := f.rules[i]
		for _, file := range files {
			if rule.predicate(file) {
				return rule.resolve(file), true
			}
		}
	}
	return "", false
}

// GetRoots returns every match of every rule, in rule order
func (f *RootFinder) GetRoots(files []string) []string {
	var roots []string
	for _, rule := range f.rules {
		for _, file := range files {
			if rule.predicate(file) {
				roots = append(roots, rule.resolve(file))
			}
		}
	}
	return roots
}

func (r rootRule) resolve(match string) string {
	if r.useParent {
		return parentDir(match)
	}
	return match
}

func baseContains(name string, ignoreCase bool) func(string) bool {
	if ignoreCase {
		lower := strings.ToLower(name)
		return func(p string) bool {
			return strings.Contains(strings.ToLower(filepath.Base(p)), lower)
		}
	}
	return func(p string) bool {
		return strings.Contains(filepath.Base(p), name)
	}
}
