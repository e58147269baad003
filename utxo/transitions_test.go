package utxo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tables below drive every reachable (prior state, operation) pair of
// the DIRTY/FRESH state machine through a single layer and check the
// resulting entry. States are encoded as values: stAbsent means no entry,
// stPruned means a tombstone entry, anything else is the unspent amount.

const (
	stAbsent int64 = -2
	stPruned int64 = -1

	value1 int64 = 100
	value2 int64 = 200
	value3 int64 = 300
)

// noFlags distinguishes "entry absent" from a real flag set in the tables.
const noFlags = entryFlags(0xff)

func stateCoin(value int64) *Coin {
	if value == stPruned {
		return NewEmptyCoin()
	}
	return testCoin(value)
}

func insertTestEntry(c *CoinsViewCache, value int64, flags entryFlags) {
	o := testPoint(0)
	coin := stateCoin(value)
	c.entries[hashOutpoint(o)] = newCacheEntry(o, coin, flags)
	c.cachedUsage += coin.DynamicMemoryUsage()
}

func readTestEntry(c *CoinsViewCache) (int64, entryFlags) {
	e, ok := c.entries[hashOutpoint(testPoint(0))]
	if !ok {
		return stAbsent, noFlags
	}
	if e.coin.IsSpent() {
		return stPruned, e.flags
	}
	return int64(e.coin.GetTxOut().GetValue()), e.flags
}

func TestSpendCoinTransitions(t *testing.T) {
	tests := []struct {
		base       int64
		cache      int64
		cacheFlags entryFlags
		wantValue  int64
		wantFlags  entryFlags
		wantOk     bool
	}{
		{stAbsent, stAbsent, noFlags, stAbsent, noFlags, false},
		{value1, stAbsent, noFlags, stPruned, flagDirty, true},
		{stAbsent, stPruned, 0, stPruned, flagDirty, false},
		{stAbsent, stPruned, flagFresh, stAbsent, noFlags, false},
		{stAbsent, stPruned, flagDirty, stPruned, flagDirty, false},
		{stAbsent, stPruned, flagDirty | flagFresh, stAbsent, noFlags, false},
		{stAbsent, value2, 0, stPruned, flagDirty, true},
		{stAbsent, value2, flagFresh, stAbsent, noFlags, true},
		{stAbsent, value2, flagDirty, stPruned, flagDirty, true},
		{stAbsent, value2, flagDirty | flagFresh, stAbsent, noFlags, true},
	}

	for i, tt := range tests {
		parent := newMemoryView()
		if tt.base != stAbsent {
			parent.coins[testPoint(0)] = stateCoin(tt.base)
		}
		cache := NewCoinsViewCache(parent)
		if tt.cacheFlags != noFlags {
			insertTestEntry(cache, tt.cache, tt.cacheFlags)
		}

		_, ok := cache.SpendCoin(testPoint(0))
		assert.Equal(t, tt.wantOk, ok, "case %d", i)

		gotValue, gotFlags := readTestEntry(cache)
		assert.Equal(t, tt.wantValue, gotValue, "case %d", i)
		assert.Equal(t, tt.wantFlags, gotFlags, "case %d", i)
		assert.Equal(t, cache.RecomputeUsage(), cache.cachedUsage, "case %d", i)
	}
}

func TestAddCoinTransitions(t *testing.T) {
	tests := []struct {
		cache      int64
		cacheFlags entryFlags
		overwrite  bool
		wantValue  int64
		wantFlags  entryFlags
		wantErr    bool
	}{
		{stAbsent, noFlags, false, value3, flagDirty | flagFresh, false},
		{stAbsent, noFlags, true, value3, flagDirty, false},
		{stPruned, 0, false, value3, flagDirty | flagFresh, false},
		{stPruned, 0, true, value3, flagDirty, false},
		{stPruned, flagFresh, false, value3, flagDirty | flagFresh, false},
		{stPruned, flagFresh, true, value3, flagDirty | flagFresh, false},
		{stPruned, flagDirty, false, value3, flagDirty, false},
		{stPruned, flagDirty, true, value3, flagDirty, false},
		{stPruned, flagDirty | flagFresh, false, value3, flagDirty | flagFresh, false},
		{stPruned, flagDirty | flagFresh, true, value3, flagDirty | flagFresh, false},
		{value2, 0, false, value2, 0, true},
		{value2, 0, true, value3, flagDirty, false},
		{value2, flagFresh, false, value2, flagFresh, true},
		{value2, flagFresh, true, value3, flagDirty | flagFresh, false},
		{value2, flagDirty, false, value2, flagDirty, true},
		{value2, flagDirty, true, value3, flagDirty, false},
		{value2, flagDirty | flagFresh, false, value2, flagDirty | flagFresh, true},
		{value2, flagDirty | flagFresh, true, value3, flagDirty | flagFresh, false},
	}

	for i, tt := range tests {
		cache := NewCoinsViewCache(newMemoryView())
		if tt.cacheFlags != noFlags {
			insertTestEntry(cache, tt.cache, tt.cacheFlags)
		}

		err := cache.AddCoin(testPoint(0), testCoin(value3), tt.overwrite)
		if tt.wantErr {
			require.Error(t, err, "case %d", i)
			assert.True(t, IsLogicError(err), "case %d", i)
		} else {
			require.NoError(t, err, "case %d", i)
		}

		gotValue, gotFlags := readTestEntry(cache)
		assert.Equal(t, tt.wantValue, gotValue, "case %d", i)
		assert.Equal(t, tt.wantFlags, gotFlags, "case %d", i)
		assert.Equal(t, cache.RecomputeUsage(), cache.cachedUsage, "case %d", i)
	}
}

func TestBatchWriteTransitions(t *testing.T) {
	tests := []struct {
		parent      int64
		parentFlags entryFlags
		child       int64
		childFlags  entryFlags
		wantValue   int64
		wantFlags   entryFlags
		wantErr     bool
	}{
		// a non-dirty child entry is a pure read-through and is skipped
		{stAbsent, noFlags, value2, 0, stAbsent, noFlags, false},
		{stAbsent, noFlags, value2, flagFresh, stAbsent, noFlags, false},

		{stAbsent, noFlags, stPruned, flagDirty, stPruned, flagDirty, false},
		{stAbsent, noFlags, stPruned, flagDirty | flagFresh, stAbsent, noFlags, false},
		{stAbsent, noFlags, value2, flagDirty, value2, flagDirty, false},
		{stAbsent, noFlags, value2, flagDirty | flagFresh, value2, flagDirty | flagFresh, false},

		{stPruned, 0, stPruned, flagDirty, stPruned, flagDirty, false},
		{stPruned, 0, stPruned, flagDirty | flagFresh, stPruned, flagDirty, false},
		{stPruned, 0, value2, flagDirty, value2, flagDirty, false},
		{stPruned, 0, value2, flagDirty | flagFresh, value2, flagDirty, false},

		{stPruned, flagFresh, stPruned, flagDirty, stAbsent, noFlags, false},
		{stPruned, flagFresh, value2, flagDirty, value2, flagDirty | flagFresh, false},

		{stPruned, flagDirty, stPruned, flagDirty, stPruned, flagDirty, false},
		{stPruned, flagDirty, value2, flagDirty, value2, flagDirty, false},

		{stPruned, flagDirty | flagFresh, stPruned, flagDirty, stAbsent, noFlags, false},
		{stPruned, flagDirty | flagFresh, value2, flagDirty, value2, flagDirty | flagFresh, false},

		{value1, 0, stPruned, flagDirty, stPruned, flagDirty, false},
		{value1, 0, stPruned, flagDirty | flagFresh, value1, 0, true},
		{value1, 0, value2, flagDirty, value2, flagDirty, false},
		{value1, 0, value2, flagDirty | flagFresh, value1, 0, true},

		{value1, flagFresh, stPruned, flagDirty, stAbsent, noFlags, false},
		{value1, flagFresh, value2, flagDirty, value2, flagDirty | flagFresh, false},

		{value1, flagDirty, stPruned, flagDirty, stPruned, flagDirty, false},
		{value1, flagDirty, value2, flagDirty, value2, flagDirty, false},

		{value1, flagDirty | flagFresh, stPruned, flagDirty, stAbsent, noFlags, false},
		{value1, flagDirty | flagFresh, value2, flagDirty, value2, flagDirty | flagFresh, false},
	}

	for i, tt := range tests {
		parent := NewCoinsViewCache(newMemoryView())
		if tt.parentFlags != noFlags {
			insertTestEntry(parent, tt.parent, tt.parentFlags)
		}

		o := testPoint(0)
		child := coinsMap{
			hashOutpoint(o): newCacheEntry(o, stateCoin(tt.child), tt.childFlags),
		}

		err := parent.BatchWrite(child, parent.BestBlock())
		if tt.wantErr {
			require.Error(t, err, "case %d", i)
			assert.True(t, IsLogicError(err), "case %d", i)
			continue
		}
		require.NoError(t, err, "case %d", i)

		gotValue, gotFlags := readTestEntry(parent)
		assert.Equal(t, tt.wantValue, gotValue, "case %d", i)
		assert.Equal(t, tt.wantFlags, gotFlags, "case %d", i)
		assert.Equal(t, parent.RecomputeUsage(), parent.cachedUsage, "case %d", i)
	}
}
