package utxo

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/citadel-chain/citadeld/model/opcodes"
	"github.com/citadel-chain/citadeld/model/script"
	"github.com/citadel-chain/citadeld/model/txout"
	"github.com/citadel-chain/citadeld/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoinSerializeRoundTrip is spec.md §8 property 6 and scenario 10:
// deserializing a known-good record recovers the exact height, coinbase
// bit, and compressed output, and re-serializing it reproduces the same
// bytes.
func TestCoinSerializeRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString("97f23c835800816115944e077fe7c803cfa57f29b36bf87c1d35")
	require.NoError(t, err)

	coin := NewEmptyCoin()
	require.NoError(t, coin.Unserialize(bytes.NewReader(raw)))

	assert.False(t, coin.IsCoinBase())
	assert.EqualValues(t, 203998, coin.GetHeight())
	assert.EqualValues(t, 60000000000, coin.GetTxOut().GetValue())

	pkh, err := hex.DecodeString("816115944e077fe7c803cfa57f29b36bf87c1d35")
	require.NoError(t, err)
	wantScript := append([]byte{opcodes.OP_DUP, opcodes.OP_HASH160, 0x14}, pkh...)
	wantScript = append(wantScript, opcodes.OP_EQUALVERIFY, opcodes.OP_CHECKSIG)
	assert.Equal(t, wantScript, coin.GetTxOut().GetScriptPubKey().GetData())

	buf := bytes.NewBuffer(nil)
	require.NoError(t, coin.Serialize(buf))
	assert.Equal(t, raw, buf.Bytes())
}

// A truncated stream must fail with a deserialization-shaped error, not
// silently produce a partial record.
func TestCoinUnserializeTruncated(t *testing.T) {
	raw, err := hex.DecodeString("97f23c835800816115944e077fe7c803cfa57f29b36bf87c1d35")
	require.NoError(t, err)

	coin := NewEmptyCoin()
	err = coin.Unserialize(bytes.NewReader(raw[:len(raw)-1]))
	assert.Error(t, err)
}

// A record claiming an absurd script length must be rejected up front,
// before any buffer is allocated for it.
func TestCoinUnserializeHugeScriptRejected(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, util.WriteVarLenInt(buf, 2))     // height 1, not coinbase
	require.NoError(t, util.WriteVarLenInt(buf, 0))     // amount 0
	require.NoError(t, util.WriteVarLenInt(buf, 1<<40)) // script length claim

	coin := NewEmptyCoin()
	assert.Error(t, coin.Unserialize(bytes.NewReader(buf.Bytes())))
}

func TestCoinSerializeSpentRejected(t *testing.T) {
	coin := NewEmptyCoin()
	err := coin.Serialize(bytes.NewBuffer(nil))
	assert.Error(t, err)
}

func TestCoinDynamicMemoryUsage(t *testing.T) {
	spentCoin := NewEmptyCoin()
	assert.Zero(t, spentCoin.DynamicMemoryUsage())

	out := txout.NewTxOut(100, script.NewScriptRaw([]byte{opcodes.OP_11, opcodes.OP_EQUAL}))
	coin := NewCoin(out, 10, false)
	assert.Positive(t, coin.DynamicMemoryUsage())
}

func TestCoinDeepCopyIndependence(t *testing.T) {
	out := txout.NewTxOut(5, script.NewScriptRaw([]byte{opcodes.OP_1}))
	coin := NewCoin(out, 1, true)
	cp := coin.DeepCopy()
	cp.Clear()
	assert.False(t, coin.IsSpent())
	assert.True(t, cp.IsSpent())
}

func TestHashZeroIsNull(t *testing.T) {
	assert.True(t, util.HashZero.IsNull())
}
