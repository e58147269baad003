package utxo

import (
	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/model/txout"
	"github.com/citadel-chain/citadeld/util"
)

// MaxOutputsPerBlock bounds FindAnyOutputByTxid's linear probe. It
// approximates MAX_BLOCK_WEIGHT / MIN_OUTPUT_WEIGHT from the consensus
// rules this cache serves; transaction/block validation itself is out
// of scope here; outputs-per-block math doesn't change often enough to
// warrant threading consensus params through this helper.
const MaxOutputsPerBlock = 4_000_000 / 165

// ApplyTxOutputs adds every output of a transaction at the given height
// to view, encoding the duplicate-coinbase tolerance described in
// spec.md §4.F: a coinbase transaction's outputs unconditionally
// overwrite whatever is already cached at the same outpoints, and a
// caller that wants the narrower "only overwrite what's actually
// present" behavior passes check=true instead.
func ApplyTxOutputs(view *CoinsViewCache, txid util.Hash, outputs []*txout.TxOut, height int32, isCoinBase bool, check bool) error {
	for i, out := range outputs {
		point := outpoint.New(txid, uint32(i))
		overwrite := isCoinBase
		if check {
			overwrite = view.HaveCoin(point)
		}
		if err := view.AddCoin(point, NewCoin(out, height, isCoinBase), overwrite); err != nil {
			return err
		}
	}
	return nil
}

// FindAnyOutputByTxid returns the first unspent output of txid in
// ascending index order, or (nil, 0, false) if every output up to
// MaxOutputsPerBlock is spent or absent. This is the "does any output of
// this historical transaction still exist" probe used by duplicate-
// transaction-id checks; it is expensive (linear in output count with no
// secondary index) and should not be called on a hot path.
func FindAnyOutputByTxid(view *CoinsViewCache, txid util.Hash) (*Coin, uint32, bool) {
	for i := uint32(0); i < MaxOutputsPerBlock; i++ {
		point := outpoint.New(txid, i)
		coin := view.AccessCoin(point)
		if !coin.IsSpent() {
			return coin.DeepCopy(), i, true
		}
	}
	return nil, 0, false
}

// ApplyUndo reinserts a previously spent coin at point, reconstructing
// the pre-spend state from undo data saved by SpendCoin. possibleOverwrite
// is always true here: the undo record may be restoring an output that a
// later, still-cached duplicate coinbase transaction has shadowed.
func ApplyUndo(view *CoinsViewCache, point outpoint.OutPoint, coin *Coin) error {
	return view.AddCoin(point, coin, true)
}
