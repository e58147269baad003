// Package utxo implements the layered unspent-transaction-output cache: a
// stacked, write-back in-memory map over a persistent key-value backing
// store, used by block connection and mempool acceptance to look up and
// mutate the active coin set.
package utxo

import (
	"encoding/binary"
	"io"

	"github.com/citadel-chain/citadeld/model/txout"
	"github.com/citadel-chain/citadeld/util"
)

// Coin is a UTXO record: an output paired with the height and coinbase
// bit of the transaction that created it. A Coin whose output is null is
// spent and carries no meaningful height or coinbase bit.
type Coin struct {
	txOut      txout.TxOut
	height     int32
	isCoinBase bool
}

// NewCoin wraps an output confirmed at height in a transaction that may or
// may not be a coinbase.
func NewCoin(out *txout.TxOut, height int32, isCoinBase bool) *Coin {
	return &Coin{txOut: *out, height: height, isCoinBase: isCoinBase}
}

// NewEmptyCoin returns the canonical spent sentinel: a coin whose output
// is null. AccessCoin returns a shared instance of this (never nil) for
// "no unspent record".
func NewEmptyCoin() *Coin {
	c := &Coin{}
	c.txOut.SetNull()
	return c
}

func (c *Coin) GetTxOut() *txout.TxOut  { return &c.txOut }
func (c *Coin) GetHeight() int32        { return c.height }
func (c *Coin) IsCoinBase() bool        { return c.isCoinBase }
func (c *Coin) IsSpent() bool           { return c.txOut.IsNull() }

// Clear turns the coin into the spent sentinel in place; Unserialize uses
// it to discard a partly read record.
func (c *Coin) Clear() {
	c.txOut.SetNull()
	c.height = 0
	c.isCoinBase = false
}

// DeepCopy returns an independent copy so that mutating the original (or
// the copy) never aliases the other's script bytes.
func (c *Coin) DeepCopy() *Coin {
	cp := &Coin{height: c.height, isCoinBase: c.isCoinBase}
	value := c.txOut.GetValue()
	if sp := c.txOut.GetScriptPubKey(); sp != nil {
		cp.txOut = *txout.NewTxOut(value, sp)
	} else {
		cp.txOut.SetValue(value)
	}
	return cp
}

// DynamicMemoryUsage is the byte-size contribution this record makes to
// its owning cache layer's running usage counter: the script buffer plus
// the fixed overhead of the record itself. A spent record (a tombstone)
// is accounted as free, since its script has been dropped and the
// running counter and an independent recomputation must agree on its
// contribution either way.
func (c *Coin) DynamicMemoryUsage() int64 {
	if c.IsSpent() {
		return 0
	}
	size := int64(binary.Size(int64(0)) + binary.Size(int32(0)) + 1)
	if sp := c.txOut.GetScriptPubKey(); sp != nil {
		size += int64(sp.Size())
	}
	return size
}

// Serialize writes the on-disk record: VARINT(height*2+coinbase) followed
// by the compressed output. Callers must never serialize a spent coin.
func (c *Coin) Serialize(w io.Writer) error {
	if c.IsSpent() {
		return errAlreadySpent
	}
	bit := int32(0)
	if c.isCoinBase {
		bit = 1
	}
	heightAndIsCoinBase := (c.height << 1) | bit
	if err := util.WriteVarLenInt(w, uint64(heightAndIsCoinBase)); err != nil {
		return err
	}
	return txout.NewTxoutCompressor(&c.txOut).Serialize(w)
}

// Unserialize is the inverse of Serialize. A truncated stream surfaces as
// whatever I/O error io.Reader produced; no partial record is retained on
// failure, since a failed output read leaves the coin cleared to the spent
// sentinel.
func (c *Coin) Unserialize(r io.Reader) error {
	hicb, err := util.ReadVarLenInt(r)
	if err != nil {
		return err
	}
	heightAndIsCoinBase := int32(hicb)
	c.height = heightAndIsCoinBase >> 1
	c.isCoinBase = heightAndIsCoinBase&1 == 1
	if err := txout.NewTxoutCompressor(&c.txOut).Unserialize(r); err != nil {
		c.Clear()
		return err
	}
	return nil
}
