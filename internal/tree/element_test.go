package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementName(t *testing.T) {
	testCases := []struct {
		element  Element
		expected string
	}{
		{dir("/"), "/"},
		{dir("/home"), "home"},
		{dir("/home/user/"), "user"},
		{file("/etc/hosts"), "hosts"},
		{file("notes.txt"), "notes.txt"},
		{file("/"), "/"},
		{file(""), ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.element.Name(), "Name() of %q", tc.element.Metadata().Path)
	}
}

func TestElementExpandable(t *testing.T) {
	assert.True(t, dir("/a").Expandable())
	assert.False(t, Directory{Meta: Meta{Path: "/a", Readable: false}}.Expandable())
	assert.False(t, Directory{Meta: Meta{Path: "/a", Readable: true, Symlink: true}}.Expandable())
	assert.False(t, file("/a").Expandable())
}

func TestWithAttributesToggled(t *testing.T) {
	d := Directory{Meta: Meta{Path: "/a", Readable: true, Attributes: "x"}, Empty: true}

	once := d.WithAttributesToggled()
	assert.True(t, once.Metadata().ShowAttributes)
	assert.False(t, d.ShowAttributes, "original value must not change")

	twice := once.WithAttributesToggled()
	assert.Equal(t, Element(d), twice)

	f := file("/b")
	assert.Equal(t, Element(f), f.WithAttributesToggled().WithAttributesToggled())
}

func TestComponents(t *testing.T) {
	testCases := []struct {
		path     string
		expected []string
	}{
		{"/a/b/c", []string{"/", "a", "b", "c"}},
		{"/", []string{"/"}},
		{"/usr/", []string{"/", "usr"}},
		{"rel/path", []string{"rel", "path"}},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Components(tc.path), "Components(%q)", tc.path)
	}
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"/", "/a", "/a/b"}, Ancestors("/a/b/c"))
	assert.Empty(t, Ancestors("/"))

	_, ok := Parent("/")
	assert.False(t, ok)
	p, ok := Parent("/a")
	assert.True(t, ok)
	assert.Equal(t, "/", p)
}
