package utxo

import "github.com/citadel-chain/citadeld/model/outpoint"

// entryFlags is the 2-bit DIRTY/FRESH state attached to every cache
// entry. See flagDirty and flagFresh below for what each bit means.
type entryFlags uint8

const (
	// flagDirty marks an entry as differing from the parent view and
	// therefore requiring propagation on flush.
	flagDirty entryFlags = 1 << iota
	// flagFresh asserts the parent holds no unspent record for this
	// outpoint, letting a subsequent spend erase the entry locally
	// instead of writing a tombstone.
	flagFresh
)

// cacheEntry is one slot of a cache layer's map: a UTXO record plus its
// DIRTY/FRESH flags. The outpoint is carried alongside the record (rather
// than recovered from the map key, which is a salted hash) so the backing
// store can build each record's on-disk key when the entry is flushed.
type cacheEntry struct {
	point outpoint.OutPoint
	coin  *Coin
	flags entryFlags
}

func newCacheEntry(point outpoint.OutPoint, coin *Coin, flags entryFlags) *cacheEntry {
	return &cacheEntry{point: point, coin: coin, flags: flags}
}

// coinsMap is the outpoint-keyed store backing a single cache layer, keyed
// by the salted hash of each outpoint (see hasher.go) rather than the
// outpoint itself, so lookups are resistant to adversarial key choices.
type coinsMap map[uint64]*cacheEntry
