// Package script carries just enough of a locking script to let the UTXO
// cache decide whether an output is statically unspendable and to
// serialize/deserialize it. Full opcode interpretation and signature
// checking are transaction-validation concerns and live outside this
// module.
package script

import (
	"io"

	"github.com/citadel-chain/citadeld/model/opcodes"
	"github.com/citadel-chain/citadeld/util"
)

const (
	// MaxScriptSize is the maximum number of bytes a locking script may
	// contain; anything larger is treated as unspendable.
	MaxScriptSize = 10000

	// MaxMessagePayload bounds how large a single serialized script is
	// allowed to claim to be before the decoder will allocate for it.
	MaxMessagePayload = 32 * 1024 * 1024
)

// Script is an opaque locking script. The cache only ever needs to know
// its raw bytes and whether it is statically unspendable.
type Script struct {
	data []byte
}

func NewEmptyScript() *Script {
	return &Script{}
}

func NewScriptRaw(data []byte) *Script {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Script{data: cp}
}

func (s *Script) GetData() []byte {
	if s == nil {
		return nil
	}
	return s.data
}

func (s *Script) Size() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// IsUnspendable reports whether the script can be statically recognized
// as never spendable, without any script evaluation: an OP_RETURN output,
// or one that exceeds the maximum standard script size.
func (s *Script) IsUnspendable() bool {
	if s == nil {
		return true
	}
	return (s.Size() > 0 && s.data[0] == opcodes.OP_RETURN) || s.Size() > MaxScriptSize
}

func (s *Script) IsEqual(other *Script) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.data) != len(other.data) {
		return false
	}
	for i := range s.data {
		if s.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (s *Script) Encode(w io.Writer) error {
	return util.WriteVarBytes(w, s.data)
}

func (s *Script) Decode(r io.Reader) error {
	data, err := ReadScript(r, MaxMessagePayload, "script")
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// ReadScript reads a length-prefixed script, rejecting any claimed length
// beyond maxAllowed before allocating a buffer for it.
func ReadScript(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	return util.ReadVarBytes(r, maxAllowed, fieldName)
}
