package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const ivSize = 12
const tagSize = aes.BlockSize
const versionMagic = byte('S')

// KeySize is the required data key length in bytes (AES-256).
const KeySize = 32

// ErrBadKeySize is returned when the data key is not KeySize bytes.
var ErrBadKeySize = errors.New("data key must be 32 bytes")

// Symmetric is the default Codec: AES-256-GCM over a packed
// [magic|tag|iv|ciphertext] layout, base64-armored for storage as text.
type Symmetric struct {
	aesgcm cipher.AEAD

	// fallback, when set, is consulted on decode for values that do not
	// carry the packed-format magic. It lets deployments read rows
	// imported from the legacy base64 store.
	fallback Codec
}

// NewSymmetric creates a Symmetric codec from a 256-bit key.
func NewSymmetric(key []byte) (*Symmetric, error) {
	if len(key) != KeySize {
		return nil, ErrBadKeySize
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(c)
	if err != nil {
		return nil, err
	}

	return &Symmetric{aesgcm: aesgcm}, nil
}

// WithLegacyFallback returns a copy of s that decodes legacy-encoded
// values through fallback when the stored value is not in packed format.
func (s *Symmetric) WithLegacyFallback(fallback Codec) *Symmetric {
	return &Symmetric{aesgcm: s.aesgcm, fallback: fallback}
}

func (s *Symmetric) Encode(scope, plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	nonce, err := RandomNonce()
	if err != nil {
		return "", err
	}

	cipherTextWithTag := s.aesgcm.Seal(nil, nonce, []byte(plain), []byte(scope))
	packed := packCipherData(cipherTextWithTag, nonce)

	return base64.StdEncoding.EncodeToString(packed), nil
}

func (s *Symmetric) Decode(scope, stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	packed, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", &DecodeError{Scope: scope, Err: err}
	}

	if len(packed) < 1+tagSize+ivSize || packed[0] != versionMagic {
		if s.fallback != nil {
			return s.fallback.Decode(scope, stored)
		}
		return "", &DecodeError{Scope: scope, Err: errors.New("not in packed cipher format")}
	}

	cipherText, iv := unpackCipherData(packed)
	plain, err := s.aesgcm.Open(nil, iv, cipherText, []byte(scope))
	if err != nil {
		return "", &DecodeError{Scope: scope, Err: err}
	}

	return string(plain), nil
}

// RandomNonce returns a fresh GCM nonce.
func RandomNonce() ([]byte, error) {
	// Never use more than 2^32 random nonces with a given key because of
	// the risk of a repeat.
	return RandomBytes(ivSize)
}

// RandomBytes returns size bytes from the system CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}

	return value, nil
}

// packCipherData lays out "#{magic}#{tag}#{iv}#{ctext}".
func packCipherData(cipherTextWithTag []byte, iv []byte) []byte {
	iv = iv[:ivSize]

	tagStartIndex := len(cipherTextWithTag) - tagSize
	tag := cipherTextWithTag[tagStartIndex:]
	cipherText := cipherTextWithTag[:tagStartIndex]

	data := make([]byte, 1+tagSize+ivSize+len(cipherText))
	data[0] = versionMagic
	index := 1

	copy(data[index:], tag)
	index += tagSize

	copy(data[index:], iv)
	index += ivSize

	copy(data[index:], cipherText)

	return data
}

// unpackCipherData reverses packCipherData, returning ciphertext||tag (the
// layout GCM's Open expects) and the iv.
func unpackCipherData(packed []byte) ([]byte, []byte) {
	index := 1

	nextIndex := index + tagSize
	tag := packed[index:nextIndex]
	index = nextIndex

	nextIndex = index + ivSize
	iv := packed[index:nextIndex]
	index = nextIndex

	cipherText := append(append([]byte{}, packed[index:]...), tag...)

	return cipherText, iv
}
