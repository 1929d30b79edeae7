// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crypt_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"code.hybscloud.com/port"
	"code.hybscloud.com/port/crypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, op string, args port.Value) port.Value {
	t.Helper()
	v, err := crypt.Family(rand.Reader)[op].Handle(context.Background(), args)
	require.NoError(t, err)
	return v
}

func TestDigestKnownAnswers(t *testing.T) {
	cases := []struct {
		alg  string
		want string
	}{
		{crypt.SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{crypt.SHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{crypt.BLAKE2b256, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
	}
	for _, tc := range cases {
		t.Run(tc.alg, func(t *testing.T) {
			v := handle(t, "digest", crypt.DigestArgs{Algorithm: tc.alg, Data: []byte("abc")})
			assert.Equal(t, tc.want, hex.EncodeToString(v.([]byte)))
		})
	}
}

func TestDigestSHA384Length(t *testing.T) {
	v := handle(t, "digest", crypt.DigestArgs{Algorithm: crypt.SHA384, Data: []byte("abc")})
	assert.Len(t, v, 48)
}

func TestDigestUnsupported(t *testing.T) {
	_, err := crypt.Family(rand.Reader)["digest"].Handle(context.Background(), crypt.DigestArgs{Algorithm: "MD5"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypt.ErrUnsupportedAlgorithm))
}

func TestHMACVerify(t *testing.T) {
	args := crypt.MACArgs{Hash: crypt.SHA256, Key: []byte("key"), Data: []byte("message")}
	mac := handle(t, "hmac", args).([]byte)
	assert.Len(t, mac, 32)

	args.MAC = mac
	assert.Equal(t, true, handle(t, "verify", args))

	args.Data = []byte("tampered")
	assert.Equal(t, false, handle(t, "verify", args))
}

func TestEncryptDecrypt(t *testing.T) {
	key := handle(t, "generateKey", nil).([]byte)
	require.Len(t, key, crypt.KeySize)

	sealed := handle(t, "encrypt", crypt.EncryptArgs{Key: key, Plaintext: []byte("hello"), AAD: []byte("hdr")}).(crypt.Sealed)
	assert.Len(t, sealed.Nonce, 24)

	pt := handle(t, "decrypt", crypt.DecryptArgs{Key: key, Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext, AAD: []byte("hdr")})
	assert.Equal(t, []byte("hello"), pt)

	_, err := crypt.Family(rand.Reader)["decrypt"].Handle(context.Background(),
		crypt.DecryptArgs{Key: key, Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext, AAD: []byte("other")})
	assert.True(t, errors.Is(err, crypt.ErrOpen))
}

func TestEncryptOverWire(t *testing.T) {
	key := handle(t, "generateKey", nil).([]byte)
	raw, err := json.Marshal(crypt.EncryptArgs{Key: key, Plaintext: []byte("wire")})
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	sealed := handle(t, "encrypt", generic).(crypt.Sealed)
	pt := handle(t, "decrypt", crypt.DecryptArgs{Key: key, Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext})
	assert.Equal(t, []byte("wire"), pt)
}

func TestDeriveKey(t *testing.T) {
	args := crypt.DeriveArgs{Secret: []byte("secret"), Salt: []byte("salt"), Info: []byte("ctx"), Length: 42}
	a := handle(t, "deriveKey", args).([]byte)
	b := handle(t, "deriveKey", args).([]byte)
	assert.Len(t, a, 42)
	assert.Equal(t, a, b)

	args.Info = []byte("other")
	c := handle(t, "deriveKey", args).([]byte)
	assert.NotEqual(t, a, c)

	args.Length = 0
	_, err := crypt.Family(rand.Reader)["deriveKey"].Handle(context.Background(), args)
	assert.Error(t, err)
}

func TestBadKeyIsHandlerFailure(t *testing.T) {
	reg := port.NewRegistry().MustRegister(crypt.Kind, crypt.Family(rand.Reader))
	rt := port.NewRuntime(reg)
	id := port.NextCorrelation()
	rt.Submit(port.EffectRequest{ID: id, Kind: crypt.Kind, Operation: "encrypt",
		Args: crypt.EncryptArgs{Key: []byte("short")}})
	r, err := rt.Await(context.Background())
	require.NoError(t, err)
	f, ok := r.Failure()
	require.True(t, ok)
	assert.Equal(t, port.HandlerFailure, f.Code)
	assert.True(t, errors.Is(r.Err(), port.ErrHandlerFailure))
}
