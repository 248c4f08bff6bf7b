package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedModels(names ...string) []ModelRule {
	out := make([]ModelRule, 0, len(names))
	for _, n := range names {
		out = append(out, NewModelRule(n))
	}
	return out
}

func modelNames(list []ModelRule) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Name)
	}
	return out
}

func TestRuleSetCounts(t *testing.T) {
	set := RuleSet{Models: namedModels("a", "b")}
	set.AddTexture(NewTextureRule("t"))

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 3, set.EnabledCount())

	require.NoError(t, set.SetModelEnabled(0, false))
	assert.Equal(t, 2, set.EnabledCount())
	assert.Equal(t, 3, set.Len(), "disabling must not remove the rule")
}

func TestRuleSetRemove(t *testing.T) {
	set := RuleSet{Models: namedModels("a", "b", "c")}

	require.NoError(t, set.RemoveModel(1))
	assert.Equal(t, []string{"a", "c"}, modelNames(set.Models))

	err := set.RemoveModel(5)
	require.Error(t, err)
}

func TestRuleSetMoveDown(t *testing.T) {
	set := RuleSet{Models: namedModels("a", "b", "c", "d")}

	require.NoError(t, set.MoveModel(0, 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, modelNames(set.Models))
}

func TestRuleSetMoveUp(t *testing.T) {
	set := RuleSet{Models: namedModels("a", "b", "c", "d")}

	require.NoError(t, set.MoveModel(3, 1))
	assert.Equal(t, []string{"a", "d", "b", "c"}, modelNames(set.Models))
}

func TestRuleSetMoveOutOfRange(t *testing.T) {
	set := RuleSet{Models: namedModels("a")}
	require.Error(t, set.MoveModel(0, 1))
	require.Error(t, set.MoveModel(-1, 0))
}

func TestMergeReplace(t *testing.T) {
	set := RuleSet{Models: namedModels("old")}
	incoming := RuleSet{Models: namedModels("new1", "new2")}

	require.NoError(t, set.Merge(incoming, MergeReplace))
	assert.Equal(t, []string{"new1", "new2"}, modelNames(set.Models))
}

func TestMergeAppendPreservesBothOrders(t *testing.T) {
	set := RuleSet{Models: namedModels("a", "b")}
	incoming := RuleSet{Models: namedModels("c", "d")}

	require.NoError(t, set.Merge(incoming, MergeAppend))
	assert.Equal(t, []string{"a", "b", "c", "d"}, modelNames(set.Models))
}

func TestMergeAppendKeepsDisabledRules(t *testing.T) {
	disabled := NewTextureRule("off")
	disabled.Enabled = false
	set := RuleSet{}
	incoming := RuleSet{Textures: []TextureRule{disabled}}

	require.NoError(t, set.Merge(incoming, MergeAppend))
	require.Len(t, set.Textures, 1)
	assert.False(t, set.Textures[0].Enabled, "imports never silently drop rules")
}

func TestMergeUnknownMode(t *testing.T) {
	set := RuleSet{}
	require.Error(t, set.Merge(RuleSet{}, "union"))
}

func TestParseMergeMode(t *testing.T) {
	m, err := ParseMergeMode("append")
	require.NoError(t, err)
	assert.Equal(t, MergeAppend, m)

	_, err = ParseMergeMode("upsert")
	require.Error(t, err)
}

func TestDuplicateNamesAreLegal(t *testing.T) {
	set := RuleSet{Models: namedModels("dup", "dup")}
	require.NoError(t, set.Validate())
	assert.Equal(t, 2, set.Len())
}
