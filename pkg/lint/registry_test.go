package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provide(id string, opts ...RuleOption) Provider {
	return func() Rule { return stub(id, opts...) }
}

func ids(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.ID()
	}
	return out
}

func TestRegistry_Resolve(t *testing.T) {
	reg := newTestRegistry(provide("standard:no-semi"), provide("custom:thing"))
	reg.RegisterAlias("semicolons", "standard:no-semi")

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"standard:no-semi", "standard:no-semi", true},
		{"no-semi", "standard:no-semi", true},
		{"semicolons", "standard:no-semi", true},
		{" custom:thing ", "custom:thing", true},
		{"thing", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		id, ok := reg.Resolve(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key: %s", tt.key)
		assert.Equal(t, tt.wantID, id, "key: %s", tt.key)
	}
}

func TestRegistry_NewReturnsFreshInstances(t *testing.T) {
	reg := newTestRegistry(provide("test:a"))

	first, ok := reg.New("test:a")
	require.True(t, ok)
	second, ok := reg.New("test:a")
	require.True(t, ok)
	proto, ok := reg.Get("test:a")
	require.True(t, ok)

	assert.NotSame(t, first, second)
	assert.NotSame(t, first, proto)

	_, ok = reg.New("test:missing")
	assert.False(t, ok)
}

func TestRegistry_RulesSorted(t *testing.T) {
	reg := newTestRegistry(provide("test:c"), provide("test:a"), provide("test:b"))
	assert.Equal(t, []string{"test:a", "test:b", "test:c"}, reg.IDs())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := newTestRegistry(provide("test:a"), provide("test:a", WithExperimental()))
	rule, ok := reg.Get("test:a")
	require.True(t, ok)
	assert.True(t, rule.Experimental())
	assert.Len(t, reg.Rules(), 1)
}

func TestSortRules(t *testing.T) {
	t.Run("ties broken by id", func(t *testing.T) {
		sorted, err := SortRules([]Rule{stub("test:c"), stub("test:a"), stub("test:b")})
		require.NoError(t, err)
		assert.Equal(t, []string{"test:a", "test:b", "test:c"}, ids(sorted))
	})

	t.Run("run after", func(t *testing.T) {
		sorted, err := SortRules([]Rule{
			stub("test:a", WithRunAfter("test:c", false)),
			stub("test:b"),
			stub("test:c"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"test:b", "test:c", "test:a"}, ids(sorted))
	})

	t.Run("run before is the reverse edge", func(t *testing.T) {
		sorted, err := SortRules([]Rule{
			stub("test:a"),
			stub("test:z", WithRunBefore("test:a")),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"test:z", "test:a"}, ids(sorted))
	})

	t.Run("chain", func(t *testing.T) {
		sorted, err := SortRules([]Rule{
			stub("test:a", WithRunAfter("test:b", true)),
			stub("test:b", WithRunAfter("test:c", true)),
			stub("test:c"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"test:c", "test:b", "test:a"}, ids(sorted))
	})

	t.Run("optional missing dependency ignored", func(t *testing.T) {
		sorted, err := SortRules([]Rule{stub("test:a", WithRunAfter("test:gone", false))})
		require.NoError(t, err)
		assert.Equal(t, []string{"test:a"}, ids(sorted))
	})

	t.Run("required missing dependency fails", func(t *testing.T) {
		_, err := SortRules([]Rule{stub("test:a", WithRunAfter("test:gone", true))})
		var missing *MissingDependencyError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "test:a", missing.RuleID)
		assert.Equal(t, "test:gone", missing.DependsOn)
	})

	t.Run("cycle fails", func(t *testing.T) {
		_, err := SortRules([]Rule{
			stub("test:a", WithRunAfter("test:b", false)),
			stub("test:b", WithRunAfter("test:c", false)),
			stub("test:c", WithRunAfter("test:a", false)),
			stub("test:d"),
		})
		var cycle *CycleError
		require.ErrorAs(t, err, &cycle)
		assert.ElementsMatch(t, []string{"test:a", "test:b", "test:c"}, cycle.Rules)
		assert.Contains(t, err.Error(), "rule ordering cycle")
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Add(Violation{Line: 2, Column: 1, RuleID: "test:b", Message: "m"})
	c.Add(Violation{Line: 1, Column: 5, RuleID: "test:b", Message: "m", Corrected: true})
	c.Add(Violation{Line: 1, Column: 5, RuleID: "test:a", Message: "m"})
	c.Add(Violation{Line: 1, Column: 5, RuleID: "test:b", Message: "m"})
	c.Add(Violation{Line: 1, Column: 2, RuleID: "test:z", Message: "m"})

	got := c.Finalize()
	require.Len(t, got, 4)
	assert.Equal(t, 4, c.Len())

	assert.Equal(t, "test:z", got[0].RuleID)
	assert.Equal(t, "test:a", got[1].RuleID)
	assert.Equal(t, "test:b", got[2].RuleID)
	assert.False(t, got[2].Corrected, "an uncorrected duplicate clears Corrected")
	assert.Equal(t, 2, got[3].Line)
}
