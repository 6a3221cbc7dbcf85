package goods

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Digest hashes the warehouse table. Two ledgers with the same quantities in
// every cell have the same digest, which makes turn replays comparable.
func (l *Ledger) Digest() string {
	h := blake3.New(32, nil)
	buf := make([]byte, 8)
	for n := 0; n < nationDim; n++ {
		for r := 0; r < regionDim; r++ {
			for g := 0; g < goodDim; g++ {
				binary.LittleEndian.PutUint64(buf, uint64(int64(l.totGoods[n][r][g])))
				h.Write(buf)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
