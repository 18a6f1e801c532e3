// Package util holds the content hash shared by the stores and caches.
package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash is the hex sha256 of content. Stores compare it to spot changes
// and the caches key rendered pages and static ETags by it.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}
