package utxo

import (
	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/util"
)

// spentSentinel is the single shared instance returned by AccessCoin for
// an absent outpoint, so that probing for a coin that isn't there never
// allocates.
var spentSentinel = NewEmptyCoin()

// CoinsViewCache is one layer of the cache stack: an in-memory map of
// outpoint to (record, flags) backed by a parent View. It implements View
// itself so layers can be stacked arbitrarily deep.
type CoinsViewCache struct {
	parent      View
	hashBlock   util.Hash
	entries     coinsMap
	cachedUsage int64
}

func NewCoinsViewCache(parent View) *CoinsViewCache {
	return &CoinsViewCache{parent: parent, entries: make(coinsMap)}
}

// fetchEntry consults the local map, pulling a read-through copy from the
// parent on miss. It returns nil when this layer has no entry and the
// parent reports no unspent record for the outpoint.
func (c *CoinsViewCache) fetchEntry(point outpoint.OutPoint) *cacheEntry {
	key := hashOutpoint(point)
	if e, ok := c.entries[key]; ok {
		return e
	}
	coin, ok := c.parent.GetCoin(point)
	if !ok {
		return nil
	}
	entry := newCacheEntry(point, coin, 0)
	if entry.coin.IsSpent() {
		// Reached only if the parent reports a spent record as present,
		// which View.GetCoin never does; such a copy holds no unspent
		// record, so nothing below us can conflict with marking it fresh.
		entry.flags = flagFresh
	}
	c.entries[key] = entry
	c.cachedUsage += entry.coin.DynamicMemoryUsage()
	return entry
}

// GetCoin returns the unspent record for point, or (nil, false) if there
// is none. A spent record is never returned as present.
func (c *CoinsViewCache) GetCoin(point outpoint.OutPoint) (*Coin, bool) {
	entry := c.fetchEntry(point)
	if entry == nil || entry.coin.IsSpent() {
		return nil, false
	}
	return entry.coin.DeepCopy(), true
}

func (c *CoinsViewCache) HaveCoin(point outpoint.OutPoint) bool {
	entry := c.fetchEntry(point)
	return entry != nil && !entry.coin.IsSpent()
}

// HaveCoinInCache is HaveCoin without the parent pull: it only reports on
// what's already resident in this layer.
func (c *CoinsViewCache) HaveCoinInCache(point outpoint.OutPoint) bool {
	entry, ok := c.entries[hashOutpoint(point)]
	return ok && !entry.coin.IsSpent()
}

// AccessCoin returns a borrow of the cached record, or the shared spent
// sentinel if absent. The caller must not retain the returned pointer
// across any further mutation of this cache.
func (c *CoinsViewCache) AccessCoin(point outpoint.OutPoint) *Coin {
	entry := c.fetchEntry(point)
	if entry == nil {
		return spentSentinel
	}
	return entry.coin
}

// AddCoin inserts or overwrites the record at point. It fails with a
// logic error iff possibleOverwrite is false and an existing local entry
// is unspent. An output recognized as statically unspendable is silently
// dropped without inserting anything.
func (c *CoinsViewCache) AddCoin(point outpoint.OutPoint, coin *Coin, possibleOverwrite bool) error {
	if coin.IsSpent() {
		return newLogicError("AddCoin: coin must not be spent")
	}
	if sp := coin.GetTxOut().GetScriptPubKey(); sp.IsUnspendable() {
		return nil
	}

	key := hashOutpoint(point)
	entry, existed := c.entries[key]
	if !existed {
		entry = newCacheEntry(point, NewEmptyCoin(), 0)
	}

	if !possibleOverwrite && !entry.coin.IsSpent() {
		return newLogicError("AddCoin: adding new coin that replaces non-pruned entry")
	}

	fresh := false
	if !possibleOverwrite {
		fresh = entry.flags&flagDirty == 0
	}

	if existed {
		c.cachedUsage -= entry.coin.DynamicMemoryUsage()
	}
	entry.coin = coin.DeepCopy()
	entry.flags |= flagDirty
	if fresh {
		entry.flags |= flagFresh
	}
	c.cachedUsage += entry.coin.DynamicMemoryUsage()
	c.entries[key] = entry
	return nil
}

// SpendCoin removes the record at point, returning the prior value for
// caller-side undo. It is a no-op, returning (nil, false), if the
// outpoint is absent everywhere.
func (c *CoinsViewCache) SpendCoin(point outpoint.OutPoint) (*Coin, bool) {
	key := hashOutpoint(point)
	entry := c.fetchEntry(point)
	if entry == nil {
		return nil, false
	}
	c.cachedUsage -= entry.coin.DynamicMemoryUsage()
	moved := entry.coin
	if entry.flags&flagFresh != 0 {
		delete(c.entries, key)
	} else {
		entry.flags |= flagDirty
		entry.coin = NewEmptyCoin()
	}
	if moved.IsSpent() {
		// The local entry was already a tombstone; there is no prior
		// record to move out, so this spend is a miss.
		return nil, false
	}
	return moved, true
}

// UnCache drops a clean (flags == 0) local entry for memory control. It
// has no effect on a dirty or fresh entry.
func (c *CoinsViewCache) UnCache(point outpoint.OutPoint) {
	key := hashOutpoint(point)
	if entry, ok := c.entries[key]; ok && entry.flags == 0 {
		c.cachedUsage -= entry.coin.DynamicMemoryUsage()
		delete(c.entries, key)
	}
}

// BestBlock is cached; it lazy-pulls from the parent once if not yet set
// and stays sticky afterward.
func (c *CoinsViewCache) BestBlock() util.Hash {
	if c.hashBlock.IsNull() {
		c.hashBlock = c.parent.BestBlock()
	}
	return c.hashBlock
}

func (c *CoinsViewCache) SetBestBlock(hash util.Hash) {
	c.hashBlock = hash
}

// HeadBlocks is only meaningful on the backing store; a cache layer is
// never the site of an interrupted crash-safety transition.
func (c *CoinsViewCache) HeadBlocks() []util.Hash {
	return nil
}

func (c *CoinsViewCache) EstimateSize() uint64 {
	return 0
}

// Cursor is not supported on a cache layer: iteration requires flushing
// to the backing store first.
func (c *CoinsViewCache) Cursor() (Cursor, error) {
	return nil, newLogicError("cursor is not supported on a cache layer; flush to the backing store first")
}

// GetCacheSize reports the number of entries resident in this layer.
func (c *CoinsViewCache) GetCacheSize() int {
	return len(c.entries)
}

// DynamicMemoryUsage is the current byte-footprint estimate: a per-entry
// map overhead estimate plus the running records-usage counter.
func (c *CoinsViewCache) DynamicMemoryUsage() int64 {
	const mapEntryOverhead = 64
	return int64(len(c.entries))*mapEntryOverhead + c.cachedUsage
}

// RecomputeUsage independently sums every entry's dynamic size; tests use
// it to check the incrementally maintained counter hasn't drifted.
func (c *CoinsViewCache) RecomputeUsage() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.coin.DynamicMemoryUsage()
	}
	return total
}

// Flush moves this layer's dirty entries up to the parent as a single
// batch, then clears the map and zeroes the usage counter.
func (c *CoinsViewCache) Flush() error {
	err := c.parent.BatchWrite(c.entries, c.hashBlock)
	c.entries = make(coinsMap)
	c.cachedUsage = 0
	return err
}

// BatchWrite merges a child layer's map into this one: dirty child entries are folded
// in, FRESH-vs-unspent-parent is a fatal logic error, and a FRESH local
// entry whose child counterpart is spent is dropped rather than
// tombstoned (the grandparent never had it either).
func (c *CoinsViewCache) BatchWrite(entries coinsMap, bestBlock util.Hash) error {
	for key, child := range entries {
		if child.flags&flagDirty == 0 {
			continue
		}
		local, existed := c.entries[key]
		if !existed {
			if child.flags&flagFresh != 0 && child.coin.IsSpent() {
				continue
			}
			newEntry := newCacheEntry(child.point, child.coin.DeepCopy(), flagDirty)
			if child.flags&flagFresh != 0 {
				newEntry.flags |= flagFresh
			}
			c.entries[key] = newEntry
			c.cachedUsage += newEntry.coin.DynamicMemoryUsage()
			continue
		}

		if child.flags&flagFresh != 0 && !local.coin.IsSpent() {
			return newLogicError("BatchWrite: FRESH flag misapplied to cache entry for base transaction with spendable outputs")
		}

		if local.flags&flagFresh != 0 && child.coin.IsSpent() {
			c.cachedUsage -= local.coin.DynamicMemoryUsage()
			delete(c.entries, key)
			continue
		}

		c.cachedUsage -= local.coin.DynamicMemoryUsage()
		local.coin = child.coin.DeepCopy()
		local.flags |= flagDirty
		c.cachedUsage += local.coin.DynamicMemoryUsage()
	}
	c.hashBlock = bestBlock
	return nil
}
