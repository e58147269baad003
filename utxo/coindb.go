package utxo

import (
	"bytes"

	"github.com/citadel-chain/citadeld/model/outpoint"
	"github.com/citadel-chain/citadeld/persist/db"
	"github.com/citadel-chain/citadeld/util"
)

// dbBestBlockKey and dbHeadBlocksKey are the single-byte key prefixes
// under which the backing store's best-block pointer and crash-safety
// marker live; both sit outside the 'C'-prefixed coin keyspace.
var (
	dbBestBlockKey  = []byte{db.DbBestBlock}
	dbHeadBlocksKey = []byte{db.DbHeadBlocks}
)

// CoinsViewDB is the View over the persistent key-value engine: the
// bottom of every cache stack. It serializes/deserializes coin records
// on every access and is the only layer that can report head-blocks or
// iterate the whole coin set.
type CoinsViewDB struct {
	dbw *db.DBWrapper
}

func NewCoinsViewDB(dbw *db.DBWrapper) *CoinsViewDB {
	return &CoinsViewDB{dbw: dbw}
}

func (v *CoinsViewDB) GetCoin(point outpoint.OutPoint) (*Coin, bool) {
	raw, err := v.dbw.Read(newCoinKey(point).bytes())
	if err != nil {
		// spec §9 open question: all Read failures, I/O or not-found
		// alike, are treated as "not found"; batch_write is the only
		// place I/O errors are surfaced.
		return nil, false
	}
	coin := NewEmptyCoin()
	if err := coin.Unserialize(bytes.NewReader(raw)); err != nil {
		return nil, false
	}
	return coin, true
}

func (v *CoinsViewDB) HaveCoin(point outpoint.OutPoint) bool {
	return v.dbw.Exists(newCoinKey(point).bytes())
}

func (v *CoinsViewDB) BestBlock() util.Hash {
	raw, err := v.dbw.Read(dbBestBlockKey)
	if err != nil {
		return util.Hash{}
	}
	var h util.Hash
	if err := h.SetBytes(raw); err != nil {
		return util.Hash{}
	}
	return h
}

// HeadBlocks reports the pending best-block transition left by an
// unclean shutdown: [new, old] if the marker is present, nil if the
// store is consistent. BatchWrite is the method that writes and erases
// the marker.
func (v *CoinsViewDB) HeadBlocks() []util.Hash {
	raw, err := v.dbw.Read(dbHeadBlocksKey)
	if err != nil || len(raw) != 2*util.Hash256Size {
		return nil
	}
	var newHash, oldHash util.Hash
	_ = newHash.SetBytes(raw[:util.Hash256Size])
	_ = oldHash.SetBytes(raw[util.Hash256Size:])
	return []util.Hash{newHash, oldHash}
}

// BatchWrite absorbs a cache layer's dirty entries in a single LevelDB
// batch. When the best block changes, the head-blocks marker is put at
// the start of that batch and erased at its end, next to the new
// best-block pointer; the batch commits as one unit, so a completed
// write leaves no marker behind.
func (v *CoinsViewDB) BatchWrite(entries coinsMap, bestBlock util.Hash) error {
	batch := db.NewBatchWrapper(v.dbw)

	oldBest := v.BestBlock()
	if !oldBest.IsEqual(&bestBlock) {
		marker := append(append([]byte{}, bestBlock[:]...), oldBest[:]...)
		batch.Write(dbHeadBlocksKey, marker)
	}

	for _, entry := range entries {
		if entry.flags&flagDirty == 0 {
			continue
		}
		key := newCoinKey(entry.point).bytes()
		if entry.coin.IsSpent() {
			batch.Erase(key)
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := entry.coin.Serialize(buf); err != nil {
			return err
		}
		batch.Write(key, buf.Bytes())
	}

	batch.Write(dbBestBlockKey, bestBlock[:])
	if !oldBest.IsEqual(&bestBlock) {
		batch.Erase(dbHeadBlocksKey)
	}

	if err := v.dbw.WriteBatch(batch, false); err != nil {
		return newIOError(err.Error())
	}
	return nil
}

func (v *CoinsViewDB) Cursor() (Cursor, error) {
	it := v.dbw.Iterator()
	it.Seek([]byte{db.DbCoin})
	return &coinDBCursor{it: it}, nil
}

func (v *CoinsViewDB) EstimateSize() uint64 {
	return v.dbw.EstimateSize([]byte{db.DbCoin}, []byte{db.DbCoin + 1})
}

// coinDBCursor walks 'C'-prefixed keys in the backing store in key
// order, stopping as soon as it runs past the coin keyspace.
type coinDBCursor struct {
	it *db.IterWrapper
}

func (c *coinDBCursor) Valid() bool {
	return c.it.Valid() && len(c.it.GetKey()) > 0 && c.it.GetKey()[0] == db.DbCoin
}

func (c *coinDBCursor) Next() {
	c.it.Next()
}

func (c *coinDBCursor) GetKey() (outpoint.OutPoint, error) {
	return decodeCoinKey(c.it.GetKey())
}

func (c *coinDBCursor) GetValue() (*Coin, error) {
	coin := NewEmptyCoin()
	if err := coin.Unserialize(bytes.NewReader(c.it.GetVal())); err != nil {
		return nil, err
	}
	return coin, nil
}

func (c *coinDBCursor) Close() {
	c.it.Close()
}
