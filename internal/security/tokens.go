package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Unambiguous alphabet: no 0/O, 1/l/I. Tokens travel in links coaches paste
// into chats, so transcription mistakes matter.
const tokenAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

const (
	clientTokenLength = 40
	inviteTokenLength = 32
)

// NewClientToken returns the raw capability token handed to a client exactly
// once, plus the hash stored server-side.
func NewClientToken() (string, string, error) {
	raw, err := RandomString(clientTokenLength, tokenAlphabet)
	if err != nil {
		return "", "", err
	}
	return raw, HashToken(raw), nil
}

func NewInviteToken() (string, string, error) {
	raw, err := RandomString(inviteTokenLength, tokenAlphabet)
	if err != nil {
		return "", "", err
	}
	return raw, HashToken(raw), nil
}

// HashToken is deterministic so the live token can be located with a single
// indexed lookup; only the hash is ever persisted.
func HashToken(raw string) string {
	digest := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(digest[:])
}
