package conn

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"testing"
)

func TestCFB8RoundTrip(t *testing.T) {
	key := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	iv := make([]byte, 16)
	copy(iv, key) // the protocol uses key=IV

	plaintext := []byte("stream cipher round trip across more than one AES block")

	blockEnc, _ := aes.NewCipher(key)
	enc := newCFB8Encrypt(blockEnc, iv)
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	if bytes.Equal(ciphertext, plaintext) {
		t.Error("ciphertext equals plaintext")
	}

	blockDec, _ := aes.NewCipher(key)
	dec := newCFB8Decrypt(blockDec, iv)
	recovered := make([]byte, len(ciphertext))
	dec.XORKeyStream(recovered, ciphertext)

	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("decrypted text does not match plaintext\ngot:  %x\nwant: %x", recovered, plaintext)
	}
}

func TestCFB8ByteAtATime(t *testing.T) {
	key := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	iv := make([]byte, 16)
	copy(iv, key)

	plaintext := []byte("byte-at-a-time equivalence")

	blockAll, _ := aes.NewCipher(key)
	encAll := newCFB8Encrypt(blockAll, iv)
	cipherAll := make([]byte, len(plaintext))
	encAll.XORKeyStream(cipherAll, plaintext)

	blockOne, _ := aes.NewCipher(key)
	encOne := newCFB8Encrypt(blockOne, iv)
	cipherOne := make([]byte, len(plaintext))
	for i := range plaintext {
		encOne.XORKeyStream(cipherOne[i:i+1], plaintext[i:i+1])
	}

	if !bytes.Equal(cipherAll, cipherOne) {
		t.Errorf("chunked and byte-wise encryption disagree\nall: %x\none: %x", cipherAll, cipherOne)
	}
}
