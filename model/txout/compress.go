package txout

import (
	"errors"
	"io"

	"github.com/citadel-chain/citadeld/model/opcodes"
	"github.com/citadel-chain/citadeld/model/script"
	"github.com/citadel-chain/citadeld/util"
)

// numSpecialScripts is the count of script templates that get a dedicated,
// single-byte size code instead of falling back to the generic encoding.
// The reference format reserves six codes (P2PKH, P2SH, and four for
// compressed/uncompressed public keys); this cache only special-cases the
// two that don't require elliptic-curve point recovery to undo, so codes
// 2-5 are never produced here and are rejected when read back (see
// scriptCompressor.Decompress).
const numSpecialScripts = 6

// CompressAmount packs an amount into the reference client's base-10
// exponent encoding: trailing decimal zeros are factored out and the
// exponent is folded back into the low digits of the encoded value, so
// round amounts like whole coins or cents compress to a handful of bits.
func CompressAmount(amt util.Amount) uint64 {
	n := uint64(amt)
	if n == 0 {
		return 0
	}
	e := uint64(0)
	for n%10 == 0 && e < 9 {
		n /= 10
		e++
	}
	if e < 9 {
		d := n % 10
		n /= 10
		return 1 + (9*n+d-1)*10 + e
	}
	return 1 + (n-1)*10 + 9
}

func DecompressAmount(x uint64) util.Amount {
	if x == 0 {
		return 0
	}
	x--
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		d := (x % 9) + 1
		x /= 9
		n = 10*x + d
	} else {
		n = x + 1
	}
	for e != 0 {
		n *= 10
		e--
	}
	return util.Amount(n)
}

// scriptCompressor recognizes the handful of locking-script shapes common
// enough to earn a compact template encoding, falling back to a raw,
// length-prefixed copy of the script for everything else.
type scriptCompressor struct {
	sp **script.Script
}

func newScriptCompressor(sp **script.Script) *scriptCompressor {
	if sp == nil {
		return nil
	}
	if *sp == nil {
		*sp = script.NewEmptyScript()
	}
	return &scriptCompressor{sp: sp}
}

func (scr *scriptCompressor) isToKeyID() []byte {
	bs := (*scr.sp).GetData()
	if len(bs) == 25 && bs[0] == opcodes.OP_DUP && bs[1] == opcodes.OP_HASH160 &&
		bs[2] == 20 && bs[23] == opcodes.OP_EQUALVERIFY && bs[24] == opcodes.OP_CHECKSIG {
		return bs[3:23]
	}
	return nil
}

func (scr *scriptCompressor) isToScriptID() []byte {
	bs := (*scr.sp).GetData()
	if len(bs) == 23 && bs[0] == opcodes.OP_HASH160 && bs[1] == 20 && bs[22] == opcodes.OP_EQUAL {
		return bs[2:22]
	}
	return nil
}

// Compress returns the special-cased encoding for a recognized template,
// or nil if the script must fall back to the generic encoding.
func (scr *scriptCompressor) Compress() []byte {
	if keyID := scr.isToKeyID(); len(keyID) > 0 {
		out := make([]byte, 21)
		out[0] = 0x00
		copy(out[1:], keyID)
		return out
	}
	if scriptID := scr.isToScriptID(); len(scriptID) > 0 {
		out := make([]byte, 21)
		out[0] = 0x01
		copy(out[1:], scriptID)
		return out
	}
	return nil
}

func getSpecialSize(nSize uint64) int {
	if nSize == 0 || nSize == 1 {
		return 20
	}
	if nSize >= 2 && nSize <= 5 {
		return 32
	}
	return 0
}

// Decompress rebuilds the script from a special-cased size code. Codes 2-5
// (compressed and uncompressed public keys) require elliptic-curve point
// recovery this cache has no use for and therefore cannot reconstruct;
// they are rejected rather than silently mis-decoded.
func (scr *scriptCompressor) Decompress(size uint64, in []byte) bool {
	var bs []byte
	switch size {
	case 0x00:
		bs = make([]byte, 25)
		bs[0] = opcodes.OP_DUP
		bs[1] = opcodes.OP_HASH160
		bs[2] = 20
		copy(bs[3:], in[0:20])
		bs[23] = opcodes.OP_EQUALVERIFY
		bs[24] = opcodes.OP_CHECKSIG
	case 0x01:
		bs = make([]byte, 23)
		bs[0] = opcodes.OP_HASH160
		bs[1] = 20
		copy(bs[2:], in[0:20])
		bs[22] = opcodes.OP_EQUAL
	default:
		return false
	}
	*scr.sp = script.NewScriptRaw(bs)
	return true
}

func (scr *scriptCompressor) Serialize(w io.Writer) error {
	if bs := scr.Compress(); len(bs) > 0 {
		_, err := w.Write(bs)
		return err
	}
	so := *scr.sp
	size := uint64(so.Size() + numSpecialScripts)
	if err := util.WriteVarLenInt(w, size); err != nil {
		return err
	}
	_, err := w.Write(so.GetData())
	return err
}

func (scr *scriptCompressor) Unserialize(r io.Reader) error {
	size, err := util.ReadVarLenInt(r)
	if err != nil {
		return err
	}
	if size < numSpecialScripts {
		vch := make([]byte, getSpecialSize(size))
		if len(vch) == 0 {
			return errors.New("scriptCompressor: unsupported special size code")
		}
		if _, err := io.ReadFull(r, vch); err != nil {
			return err
		}
		if !scr.Decompress(size, vch) {
			return errors.New("scriptCompressor: decompress failed")
		}
		return nil
	}
	size -= numSpecialScripts
	if size > script.MaxScriptSize {
		// Anything this large would have been dropped as unspendable
		// before ever being stored; reject before allocating for it.
		return errors.New("scriptCompressor: script size exceeds maximum")
	}
	tmp := make([]byte, size)
	if _, err := io.ReadFull(r, tmp); err != nil {
		return err
	}
	*scr.sp = script.NewScriptRaw(tmp)
	return nil
}

// TxoutCompressor serializes a TxOut using the compressed amount and
// script encodings, the on-disk format used by the backing store.
type TxoutCompressor struct {
	txout *TxOut
	sc    *scriptCompressor
}

var ErrCompress = errors.New("nil TxoutCompressor receiver")

func NewTxoutCompressor(out *TxOut) *TxoutCompressor {
	if out == nil {
		return nil
	}
	return &TxoutCompressor{
		txout: out,
		sc:    newScriptCompressor(&out.scriptPubKey),
	}
}

func (tc *TxoutCompressor) Serialize(w io.Writer) error {
	if tc == nil {
		return ErrCompress
	}
	if err := util.WriteVarLenInt(w, CompressAmount(tc.txout.value)); err != nil {
		return err
	}
	return tc.sc.Serialize(w)
}

func (tc *TxoutCompressor) Unserialize(r io.Reader) error {
	if tc == nil {
		return ErrCompress
	}
	amt, err := util.ReadVarLenInt(r)
	if err != nil {
		return err
	}
	tc.txout.value = DecompressAmount(amt)
	return tc.sc.Unserialize(r)
}
