package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Annotations returns the tag and comment lists of a project, phase or
// task. Subtasks carry neither.
func (idx *Index) Annotations(id ItemID) (tags *[]string, comments *[]Comment, err error) {
	if p, ok := idx.Project(id); ok {
		return &p.Tags, &p.Comments, nil
	}
	it, ok := idx.Item(id)
	if !ok {
		return nil, nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	switch v := it.(type) {
	case *Phase:
		return &v.Tags, &v.Comments, nil
	case *Task:
		return &v.Tags, &v.Comments, nil
	}
	return nil, nil, fmt.Errorf("%s %d has no tags or comments: %w", it.Kind(), id, ErrWrongKind)
}

// NormalizeTag lowercases a tag and strips a leading '#'.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

// AddTag appends tag unless already present. It reports whether the list
// changed.
func AddTag(tags *[]string, tag string) bool {
	tag = NormalizeTag(tag)
	if tag == "" || slices.Contains(*tags, tag) {
		return false
	}
	*tags = append(*tags, tag)
	return true
}

// RemoveTag drops tag and reports whether it was present.
func RemoveTag(tags *[]string, tag string) bool {
	tag = NormalizeTag(tag)
	before := len(*tags)
	*tags = slices.DeleteFunc(*tags, func(t string) bool { return t == tag })
	return len(*tags) != before
}

// Rename sets the display name of any project or item.
func (idx *Index) Rename(id ItemID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if p, ok := idx.Project(id); ok {
		p.Name = name
		return nil
	}
	it, ok := idx.Item(id)
	if !ok {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	switch v := it.(type) {
	case *Phase:
		v.Name = name
	case *Task:
		v.Name = name
	case *Subtask:
		v.Name = name
	}
	return nil
}
