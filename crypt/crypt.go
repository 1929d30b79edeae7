// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package crypt provides the "crypto" operation family.
//
// Byte fields travel as []byte, which JSON carries as base64.
//
// Operations:
//
//	digest      {algorithm, data}              → []byte
//	hmac        {hash, key, data}              → []byte
//	verify      {hash, key, data, mac}         → bool
//	generateKey                                → []byte of KeySize
//	encrypt     {key, plaintext, aad}          → Sealed (XChaCha20-Poly1305)
//	decrypt     {key, nonce, ciphertext, aad}  → []byte
//	deriveKey   {secret, salt, info, length}   → []byte (HKDF-SHA256)
package crypt

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"
	"sync"

	"code.hybscloud.com/port"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Kind is the family name under which Family is registered.
const Kind = "crypto"

// KeySize is the size of generated and encryption keys.
const KeySize = chacha20poly1305.KeySize

// MaxDerived bounds the length of a derived key.
const MaxDerived = 255 * sha256.Size

// Hash algorithm names.
const (
	SHA256     = "SHA-256"
	SHA384     = "SHA-384"
	SHA512     = "SHA-512"
	BLAKE2b256 = "BLAKE2b-256"
)

// ErrUnsupportedAlgorithm reports an unknown hash algorithm name.
var ErrUnsupportedAlgorithm = errors.New("crypt: unsupported algorithm")

// ErrOpen reports a ciphertext that failed authentication.
var ErrOpen = errors.New("crypt: message authentication failed")

// DigestArgs are the arguments of digest.
type DigestArgs struct {
	Algorithm string `json:"algorithm"`
	Data      []byte `json:"data"`
}

// MACArgs are the arguments of hmac and verify. MAC is ignored by hmac.
type MACArgs struct {
	Hash string `json:"hash"`
	Key  []byte `json:"key"`
	Data []byte `json:"data"`
	MAC  []byte `json:"mac,omitempty"`
}

// EncryptArgs are the arguments of encrypt.
type EncryptArgs struct {
	Key       []byte `json:"key"`
	Plaintext []byte `json:"plaintext"`
	AAD       []byte `json:"aad,omitempty"`
}

// Sealed is the result of encrypt.
type Sealed struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DecryptArgs are the arguments of decrypt.
type DecryptArgs struct {
	Key        []byte `json:"key"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
	AAD        []byte `json:"aad,omitempty"`
}

// DeriveArgs are the arguments of deriveKey.
type DeriveArgs struct {
	Secret []byte `json:"secret"`
	Salt   []byte `json:"salt,omitempty"`
	Info   []byte `json:"info,omitempty"`
	Length int    `json:"length"`
}

// NewHash returns a constructor for the named algorithm.
func NewHash(name string) (func() hash.Hash, error) {
	switch name {
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	case BLAKE2b256:
		return func() hash.Hash {
			h, _ := blake2b.New256(nil)
			return h
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Family returns the crypto handlers drawing keys and nonces from r,
// typically crypto/rand.Reader.
func Family(r io.Reader) map[string]port.Handler {
	f := &family{r: r}
	return map[string]port.Handler{
		"digest":      port.Typed(f.digest),
		"hmac":        port.Typed(f.mac),
		"verify":      port.Typed(f.verify),
		"generateKey": port.Typed(f.generateKey),
		"encrypt":     port.Typed(f.encrypt),
		"decrypt":     port.Typed(f.decrypt),
		"deriveKey":   port.Typed(f.deriveKey),
	}
}

type family struct {
	mu sync.Mutex
	r  io.Reader
}

func (f *family) fill(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := io.ReadFull(f.r, p)
	return err
}

func (f *family) digest(_ context.Context, args DigestArgs) ([]byte, error) {
	newHash, err := NewHash(args.Algorithm)
	if err != nil {
		return nil, err
	}
	h := newHash()
	h.Write(args.Data)
	return h.Sum(nil), nil
}

func (f *family) mac(_ context.Context, args MACArgs) ([]byte, error) {
	newHash, err := NewHash(args.Hash)
	if err != nil {
		return nil, err
	}
	m := hmac.New(newHash, args.Key)
	m.Write(args.Data)
	return m.Sum(nil), nil
}

func (f *family) verify(ctx context.Context, args MACArgs) (bool, error) {
	sum, err := f.mac(ctx, args)
	if err != nil {
		return false, err
	}
	return hmac.Equal(sum, args.MAC), nil
}

func (f *family) generateKey(context.Context, struct{}) ([]byte, error) {
	key := make([]byte, KeySize)
	if err := f.fill(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (f *family) encrypt(_ context.Context, args EncryptArgs) (Sealed, error) {
	aead, err := chacha20poly1305.NewX(args.Key)
	if err != nil {
		return Sealed{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if err := f.fill(nonce); err != nil {
		return Sealed{}, err
	}
	return Sealed{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, args.Plaintext, args.AAD),
	}, nil
}

func (f *family) decrypt(_ context.Context, args DecryptArgs) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(args.Key)
	if err != nil {
		return nil, err
	}
	if len(args.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("crypt: nonce is %d bytes, want %d", len(args.Nonce), aead.NonceSize())
	}
	pt, err := aead.Open(nil, args.Nonce, args.Ciphertext, args.AAD)
	if err != nil {
		return nil, ErrOpen
	}
	return pt, nil
}

func (f *family) deriveKey(_ context.Context, args DeriveArgs) ([]byte, error) {
	if args.Length <= 0 || args.Length > MaxDerived {
		return nil, fmt.Errorf("crypt: length %d out of range [1, %d]", args.Length, MaxDerived)
	}
	out := make([]byte, args.Length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, args.Secret, args.Salt, args.Info), out); err != nil {
		return nil, err
	}
	return out, nil
}
