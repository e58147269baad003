package utxo

import (
	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/util"
)

// View is the capability set any layer of the stack satisfies: the
// backing store, a cache layer, or a test double. Cursor and
// EstimateSize are best-effort: a cache layer returns a logic error from
// Cursor rather than implementing iteration (see CoinsViewCache.Cursor).
type View interface {
	// GetCoin returns the unspent record for point, or (nil, false) if
	// there is none. A spent record is never returned as present.
	GetCoin(point outpoint.OutPoint) (*Coin, bool)

	// HaveCoin is equivalent to checking presence via GetCoin but may be
	// cheaper for implementations that needn't materialize the record.
	HaveCoin(point outpoint.OutPoint) bool

	// BestBlock is the hash whose post-state this view represents. The
	// zero hash is returned before any write has set it.
	BestBlock() util.Hash

	// HeadBlocks returns [new, old] if a best-block transition was left
	// interrupted by a crash, or nil if the view is consistent. Only the
	// backing store can return a non-nil result; cache layers always
	// report nil.
	HeadBlocks() []util.Hash

	// BatchWrite atomically absorbs a set of outpoint mutations and
	// updates the best-block. The entries map is left as it was passed;
	// the caller treats it as consumed and must not reuse it afterward.
	BatchWrite(entries coinsMap, bestBlock util.Hash) error

	// Cursor returns an ordered iterator over all stored outpoints, or an
	// error if this view does not support iteration.
	Cursor() (Cursor, error)

	// EstimateSize reports an approximate on-disk footprint, or 0 if the
	// view has no meaningful notion of one.
	EstimateSize() uint64
}

// Cursor walks stored UTXO records in key order.
type Cursor interface {
	Valid() bool
	Next()
	GetKey() (outpoint.OutPoint, error)
	GetValue() (*Coin, error)
	Close()
}
