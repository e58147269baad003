// Package outpoint defines the (tx-id, index) pair that identifies a
// single transaction output.
package outpoint

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/citadel-chain/citadeld/util"
)

// OutPoint references output Index of the transaction identified by Hash.
type OutPoint struct {
	Hash  util.Hash
	Index uint32
}

func New(hash util.Hash, index uint32) OutPoint {
	return OutPoint{Hash: hash, Index: index}
}

const EncodeSize = util.Hash256Size + 4

func (o *OutPoint) SerializeSize() uint32 {
	return EncodeSize
}

func (o *OutPoint) Encode(w io.Writer) error {
	if _, err := w.Write(o.Hash[:]); err != nil {
		return err
	}
	return util.BinarySerializer.PutUint32(w, binary.LittleEndian, o.Index)
}

func (o *OutPoint) Decode(r io.Reader) error {
	if _, err := io.ReadFull(r, o.Hash[:]); err != nil {
		return err
	}
	index, err := util.BinarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	o.Index = index
	return nil
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.ToString(), o.Index)
}

// IsNull reports whether this is the sentinel outpoint used by coinbase
// inputs, which do not reference a real prior output.
func (o OutPoint) IsNull() bool {
	return o.Index == math.MaxUint32 && o.Hash.IsEqual(&util.HashZero)
}
