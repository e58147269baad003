// Package txout defines a single transaction output and its compressed
// on-disk encoding, as stored inside a cached UTXO record.
package txout

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/citadel-chain/citadeld/model/script"
	"github.com/citadel-chain/citadeld/util"
)

// TxOut is an amount paired with the locking script that guards it.
type TxOut struct {
	value        util.Amount
	scriptPubKey *script.Script
}

func NewTxOut(value util.Amount, scriptPubKey *script.Script) *TxOut {
	out := TxOut{value: value}
	if scriptPubKey != nil {
		out.scriptPubKey = script.NewScriptRaw(scriptPubKey.GetData())
	}
	return &out
}

func (txOut *TxOut) GetValue() util.Amount {
	return txOut.value
}

func (txOut *TxOut) SetValue(v util.Amount) {
	txOut.value = v
}

func (txOut *TxOut) GetScriptPubKey() *script.Script {
	return txOut.scriptPubKey
}

func (txOut *TxOut) SetScriptPubKey(s *script.Script) {
	txOut.scriptPubKey = s
}

// SetNull marks the output as absent using the value sentinel the cache
// uses to recognize a spent or never-populated entry.
func (txOut *TxOut) SetNull() {
	txOut.value = util.NullValue
	txOut.scriptPubKey = nil
}

func (txOut *TxOut) IsNull() bool {
	return txOut.value == util.NullValue
}

// IsSpendable reports whether the output could ever be spent, independent
// of whether it already has been.
func (txOut *TxOut) IsSpendable() bool {
	if txOut == nil || txOut.scriptPubKey == nil {
		return false
	}
	return !txOut.scriptPubKey.IsUnspendable()
}

func (txOut *TxOut) IsEqual(other *TxOut) bool {
	if txOut.value != other.value {
		return false
	}
	return txOut.scriptPubKey.IsEqual(other.scriptPubKey)
}

func (txOut *TxOut) String() string {
	return fmt.Sprintf("Value:%d Script:%s", txOut.value, hex.EncodeToString(txOut.scriptPubKey.GetData()))
}

func (txOut *TxOut) SerializeSize() uint32 {
	size := uint32(8)
	if txOut.scriptPubKey == nil {
		return size + 1
	}
	return size + uint32(util.VarIntSerializeSize(uint64(txOut.scriptPubKey.Size()))) + uint32(txOut.scriptPubKey.Size())
}

// Encode writes the uncompressed wire representation: an 8-byte
// little-endian amount followed by the length-prefixed script.
func (txOut *TxOut) Encode(w io.Writer) error {
	if err := util.BinarySerializer.PutUint64(w, binary.LittleEndian, uint64(txOut.value)); err != nil {
		return err
	}
	if txOut.scriptPubKey == nil {
		return util.WriteVarInt(w, 0)
	}
	return txOut.scriptPubKey.Encode(w)
}

func (txOut *TxOut) Decode(r io.Reader) error {
	v, err := util.BinarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	txOut.value = util.Amount(v)
	data, err := script.ReadScript(r, script.MaxMessagePayload, "tx output script")
	if err != nil {
		return err
	}
	txOut.scriptPubKey = script.NewScriptRaw(data)
	return nil
}
