package dolx

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the hex BLAKE3-256 hash of the unpacked image bytes.
func (im *Image) Digest() string {
	sum := blake3.Sum256(im.All)
	return hex.EncodeToString(sum[:])
}
