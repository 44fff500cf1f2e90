// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reveal

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mixology/pkg/types"
)

func items(prefix string, n int) []types.Cocktail {
	out := make([]types.Cocktail, n)
	for i := range out {
		out[i] = types.Cocktail{ID: fmt.Sprintf("%s%d", prefix, i), Name: fmt.Sprintf("Drink %d", i), Origin: types.OriginRemote}
	}
	return out
}

func newController() *Controller {
	return New(types.BrowseConfig{})
}

// trigger fires one visibility signal and settles it immediately.
func trigger(c *Controller) int {
	t, ok := c.Trigger()
	if !ok {
		return 0
	}
	return c.Settle(t)
}

func TestInitialBatch(t *testing.T) {
	c := newController()
	assert.True(t, c.SetSource(items("a", 20)))
	assert.Equal(t, 8, c.Revealed())
	assert.Len(t, c.Visible(), 8)
	assert.False(t, c.LoadingMore())
	assert.True(t, c.HasMore())
}

func TestInitialBatchClampedToSource(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 3))
	assert.Equal(t, 3, c.Revealed())
	assert.False(t, c.HasMore())

	_, ok := c.Trigger()
	assert.False(t, ok)
}

func TestTwentyItemsRevealSequence(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 20))

	assert.Equal(t, 5, trigger(c))
	assert.Equal(t, 13, c.Revealed())

	assert.Equal(t, 5, trigger(c))
	assert.Equal(t, 18, c.Revealed())

	assert.Equal(t, 2, trigger(c), "third trigger appends what is left")
	assert.Equal(t, 20, c.Revealed())

	assert.Equal(t, 0, trigger(c), "fourth trigger finds the source exhausted")
	assert.Equal(t, 20, c.Revealed())
}

func TestTriggerWhileLoadingIgnored(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 20))

	t1, ok := c.Trigger()
	require.True(t, ok)
	assert.True(t, c.LoadingMore())

	_, ok = c.Trigger()
	assert.False(t, ok, "second trigger during load is ignored")

	assert.Equal(t, 5, c.Settle(t1))
	assert.Equal(t, 13, c.Revealed())
	assert.False(t, c.LoadingMore())

	assert.Equal(t, 0, c.Settle(t1), "a ticket settles once")
	assert.Equal(t, 13, c.Revealed())
}

func TestSourceContentChangeResets(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 20))
	trigger(c)
	require.Equal(t, 13, c.Revealed())

	assert.True(t, c.SetSource(items("b", 20)), "same length, different content")
	assert.Equal(t, 8, c.Revealed())
}

func TestSameContentDoesNotReset(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 20))
	trigger(c)

	assert.False(t, c.SetSource(items("a", 20)))
	assert.Equal(t, 13, c.Revealed())
}

func TestResetDropsPendingLoad(t *testing.T) {
	c := newController()
	c.SetSource(items("a", 20))
	tk, ok := c.Trigger()
	require.True(t, ok)

	c.SetSource(items("b", 30))
	assert.False(t, c.LoadingMore())
	assert.Equal(t, 0, c.Settle(tk), "ticket from before the reset is dropped")
	assert.Equal(t, 8, c.Revealed())
}

func TestEmptySource(t *testing.T) {
	c := newController()
	c.SetSource([]types.Cocktail{})
	assert.Equal(t, 0, c.Revealed())
	assert.Empty(t, c.Visible())
	_, ok := c.Trigger()
	assert.False(t, ok)
}

func TestConfiguredBatchSizes(t *testing.T) {
	c := New(types.BrowseConfig{InitialBatch: 2, BatchIncrement: 3})
	c.SetSource(items("a", 10))
	assert.Equal(t, 2, c.Revealed())
	trigger(c)
	assert.Equal(t, 5, c.Revealed())
	assert.Equal(t, DefaultSettleDelay, c.SettleDelay())
}

// TestRevealMonotonic drives random triggers, settles and source changes
// and checks the prefix invariants after every step.
func TestRevealMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := newController()
	c.SetSource(items("s0", rng.Intn(40)))

	var pending []Ticket
	prev := c.Revealed()
	for step := 0; step < 2000; step++ {
		reset := false
		switch rng.Intn(10) {
		case 0:
			reset = c.SetSource(items(fmt.Sprintf("s%d", step), rng.Intn(40)))
		case 1, 2, 3, 4:
			if tk, ok := c.Trigger(); ok {
				pending = append(pending, tk)
			}
		default:
			if len(pending) > 0 {
				i := rng.Intn(len(pending))
				c.Settle(pending[i])
				pending = append(pending[:i], pending[i+1:]...)
			}
		}

		require.LessOrEqual(t, c.Revealed(), c.Len(), "step %d", step)
		require.GreaterOrEqual(t, c.Revealed(), 0)
		if !reset {
			require.GreaterOrEqual(t, c.Revealed(), prev, "step %d: revealed decreased without reset", step)
		} else {
			require.Equal(t, min(8, c.Len()), c.Revealed())
		}
		prev = c.Revealed()
	}
}
