package txout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citadel-chain/citadeld/model/opcodes"
	"github.com/citadel-chain/citadeld/model/script"
	"github.com/citadel-chain/citadeld/util"
)

type TestWriter struct {
}

func (tw *TestWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("test writer error")
}

var myscript = []byte{0x14, 0x69, 0xe1, 0x2a, 0x40, 0xd4, 0xa2, 0x21, 0x8d, 0x33, 0xf2,
	0x08, 0xb9, 0xa0, 0x44, 0x78, 0x94, 0xdc, 0x9b, 0xea, 0x31} //21 bytes

var (
	script1   = script.NewScriptRaw(myscript)
	testTxout = NewTxOut(9, script1)
)

func TestNewTxOut(t *testing.T) {
	assert.Equal(t, util.Amount(9), testTxout.GetValue())
	assert.Equal(t, myscript, testTxout.GetScriptPubKey().GetData())

	// the constructor must copy the script so later mutation of the
	// original cannot alias the output
	raw := []byte{opcodes.OP_1}
	sp := script.NewScriptRaw(raw)
	out := NewTxOut(1, sp)
	raw[0] = opcodes.OP_2
	assert.Equal(t, []byte{opcodes.OP_1}, out.GetScriptPubKey().GetData())
}

func TestTxOutSetGet(t *testing.T) {
	out := NewTxOut(5, script1)
	out.SetValue(7)
	assert.Equal(t, util.Amount(7), out.GetValue())

	other := script.NewScriptRaw([]byte{opcodes.OP_EQUAL})
	out.SetScriptPubKey(other)
	assert.True(t, out.GetScriptPubKey().IsEqual(other))
}

func TestTxOutNull(t *testing.T) {
	out := NewTxOut(9, script1)
	assert.False(t, out.IsNull())

	out.SetNull()
	assert.True(t, out.IsNull())
	assert.Nil(t, out.GetScriptPubKey())
}

func TestTxOutIsSpendable(t *testing.T) {
	assert.True(t, testTxout.IsSpendable())

	opReturn := NewTxOut(9, script.NewScriptRaw([]byte{opcodes.OP_RETURN, 0x01, 0x02}))
	assert.False(t, opReturn.IsSpendable())

	var nilOut *TxOut
	assert.False(t, nilOut.IsSpendable())

	noScript := &TxOut{value: 1}
	assert.False(t, noScript.IsSpendable())
}

func TestTxOutIsEqual(t *testing.T) {
	a := NewTxOut(9, script1)
	b := NewTxOut(9, script.NewScriptRaw(myscript))
	assert.True(t, a.IsEqual(b))

	b.SetValue(10)
	assert.False(t, a.IsEqual(b))

	c := NewTxOut(9, script.NewScriptRaw([]byte{opcodes.OP_1}))
	assert.False(t, a.IsEqual(c))
}

func TestTxOutSerializeSize(t *testing.T) {
	// 8-byte amount + 1-byte length prefix + 21 script bytes
	assert.Equal(t, uint32(30), testTxout.SerializeSize())
}

func TestTxOutEncodeDecodeRoundTrip(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, testTxout.Encode(buf))
	assert.EqualValues(t, testTxout.SerializeSize(), buf.Len())

	var got TxOut
	require.NoError(t, got.Decode(buf))
	assert.True(t, testTxout.IsEqual(&got))
}

func TestTxOutEncodeFailingWriter(t *testing.T) {
	assert.Error(t, testTxout.Encode(&TestWriter{}))
}

func TestTxOutDecodeTruncated(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, testTxout.Encode(buf))

	raw := buf.Bytes()
	var got TxOut
	assert.Error(t, got.Decode(bytes.NewReader(raw[:len(raw)-1])))
	assert.Error(t, got.Decode(bytes.NewReader(raw[:4])))
}

func TestTxOutString(t *testing.T) {
	assert.True(t, strings.Contains(testTxout.String(), "9"))
}
