package utxo

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/util"
)

// saltK0/saltK1 form the process-wide 128-bit key used to hash outpoints
// for every cache layer's in-memory map. The key is drawn once from a
// secure RNG and never reseeded, so the hash is stable for the life of
// the process but unpredictable to anyone who hasn't observed it.
var (
	saltOnce sync.Once
	saltK0   uint64
	saltK1   uint64
)

func outpointSalt() (uint64, uint64) {
	saltOnce.Do(func() {
		var buf [16]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic("utxo: failed to seed outpoint hasher: " + err.Error())
		}
		saltK0 = binary.LittleEndian.Uint64(buf[0:8])
		saltK1 = binary.LittleEndian.Uint64(buf[8:16])
	})
	return saltK0, saltK1
}

// hashOutpoint computes the keyed SipHash-2-4 of an outpoint, mixing the
// output index in as the extra word. This is the hash used to bucket
// entries in a cache layer's map, not a content hash for any wire format.
func hashOutpoint(o outpoint.OutPoint) uint64 {
	k0, k1 := outpointSalt()
	return util.SipHashExtra(k0, k1, o.Hash[:], o.Index)
}
