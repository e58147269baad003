package utxo

import (
	"bytes"
	"io"

	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/persist/db"
	"github.com/citadel-chain/citadeld/util"
)

// coinKey is the on-disk key format for a single UTXO record: a one-byte
// 'C' prefix followed by the 32-byte tx-id and a varint output index.
type coinKey struct {
	point outpoint.OutPoint
}

func newCoinKey(point outpoint.OutPoint) *coinKey {
	return &coinKey{point: point}
}

func (k *coinKey) Serialize(w io.Writer) error {
	if _, err := w.Write([]byte{db.DbCoin}); err != nil {
		return err
	}
	if _, err := w.Write(k.point.Hash[:]); err != nil {
		return err
	}
	return util.WriteVarInt(w, uint64(k.point.Index))
}

func (k *coinKey) Unserialize(r io.Reader) error {
	prefix := make([]byte, 1)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return err
	}
	if prefix[0] != db.DbCoin {
		return newDeserializationError("coinKey: unexpected key prefix")
	}
	if _, err := io.ReadFull(r, k.point.Hash[:]); err != nil {
		return err
	}
	index, err := util.ReadVarInt(r)
	if err != nil {
		return err
	}
	k.point.Index = uint32(index)
	return nil
}

func (k *coinKey) bytes() []byte {
	buf := bytes.NewBuffer(nil)
	// Serialize into a fresh buffer never fails for in-memory writes.
	_ = k.Serialize(buf)
	return buf.Bytes()
}

func decodeCoinKey(raw []byte) (outpoint.OutPoint, error) {
	var k coinKey
	if err := k.Unserialize(bytes.NewReader(raw)); err != nil {
		return outpoint.OutPoint{}, err
	}
	return k.point, nil
}
