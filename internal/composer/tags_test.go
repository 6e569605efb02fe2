package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagCollectorRejectsDuplicates(t *testing.T) {
	tc := NewTagCollector()
	assert.True(t, tc.Add("go"))
	assert.False(t, tc.Add("go"))
	assert.False(t, tc.Add("  go "))
	assert.True(t, tc.Add("Go"))
	assert.Equal(t, []string{"go", "Go"}, tc.Tags())
	assert.Equal(t, `["go","Go"]`, tc.Field())
}

func TestTagCollectorAddAddRemove(t *testing.T) {
	tc := NewTagCollector()
	tc.Add("a")
	tc.Add("b")
	assert.True(t, tc.Remove("a"))
	assert.Equal(t, `["b"]`, tc.Field())
	assert.False(t, tc.Remove("missing"))
}

func TestTagCollectorEmptyAddLeavesFieldUntouched(t *testing.T) {
	tc := NewTagCollector()
	assert.False(t, tc.Add(""))
	assert.False(t, tc.Add("   "))
	assert.Equal(t, "", tc.Field())
	assert.Equal(t, 0, tc.Len())
}

func TestTagCollectorEmptiedFieldIsEmptyArray(t *testing.T) {
	tc := NewTagCollector()
	tc.Add("x")
	tc.Remove("x")
	assert.Equal(t, "[]", tc.Field())
}

func TestTagCollectorTagsIsCopy(t *testing.T) {
	tc := NewTagCollector()
	tc.Add("x")
	tags := tc.Tags()
	tags[0] = "mutated"
	assert.True(t, tc.Has("x"))
}

func TestTagCollectorRestore(t *testing.T) {
	tc := NewTagCollector()
	tc.Add("old")
	tc.Restore(`["a","b","a"]`)
	assert.Equal(t, []string{"a", "b"}, tc.Tags())
	assert.Equal(t, `["a","b"]`, tc.Field())

	tc.Restore("")
	assert.Equal(t, "", tc.Field())
	assert.Equal(t, 0, tc.Len())
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, ParseTags(`["go", " web "]`))
	assert.Equal(t, []string{"go", "web", "cli"}, ParseTags("go, web，cli"))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{"a"}, ParseTags(" ,a, "))
	assert.Equal(t, []string{"[broken"}, ParseTags("[broken"))
}
