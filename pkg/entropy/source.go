// Package entropy provides the reseeding ChaCha20 byte source that key
// generation draws from.
//
// The generator state is a ChaCha20 key and nonce. Every reseed replaces both
// with fresh bytes read from the OS (or an injected reader), so a leaked
// generator state only exposes output produced before the next reseed. A
// threshold of zero reseeds before every request.
package entropy

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// SeedSize is the length of a keypair seed.
const SeedSize = 32

const stateSize = chacha20.KeySize + chacha20.NonceSize

// Source is a reseeding ChaCha20 generator. It is not safe for concurrent use.
type Source struct {
	reseeder  io.Reader
	threshold uint64

	cipher  *chacha20.Cipher
	served  uint64
	reseeds uint64
}

// Option configures a Source.
type Option func(*Source)

// WithReseedReader replaces crypto/rand.Reader as the reseed input.
func WithReseedReader(r io.Reader) Option {
	return func(s *Source) {
		s.reseeder = r
	}
}

// WithReseedThreshold sets how many bytes are served between reseeds.
// Zero reseeds before every Read.
func WithReseedThreshold(n uint64) Option {
	return func(s *Source) {
		s.threshold = n
	}
}

// New creates a Source keyed from the reseed reader. It fails if the reader
// cannot supply the initial state.
func New(opts ...Option) (*Source, error) {
	s := &Source{reseeder: rand.Reader}
	for _, opt := range opts {
		opt(s)
	}
	if s.reseeder == nil {
		return nil, errors.NewEntropyError("no reseed reader configured", errors.ErrEntropyUnavailable)
	}
	if err := s.reseed(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDeterministic returns a Source that is keyed from seed and never
// reseeds. Two sources built from the same seed produce the same stream.
func NewDeterministic(seed [SeedSize]byte) *Source {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// Key and nonce lengths are constants.
		panic(err)
	}
	return &Source{cipher: c}
}

// Read fills p with keystream bytes, reseeding first when the threshold has
// been reached.
func (s *Source) Read(p []byte) (int, error) {
	if s.reseeder != nil && s.served >= s.threshold {
		if err := s.reseed(); err != nil {
			return 0, err
		}
	}
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	s.served += uint64(len(p))
	return len(p), nil
}

// NextSeed returns a fresh 32-byte keypair seed.
func (s *Source) NextSeed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if _, err := s.Read(seed[:]); err != nil {
		return seed, err
	}
	return seed, nil
}

// Reseeds reports how many times the generator state was replaced, including
// the initial keying.
func (s *Source) Reseeds() uint64 {
	return s.reseeds
}

func (s *Source) reseed() error {
	var state [stateSize]byte
	if _, err := io.ReadFull(s.reseeder, state[:]); err != nil {
		return errors.NewEntropyError("failed to read reseed entropy", err)
	}
	c, err := chacha20.NewUnauthenticatedCipher(state[:chacha20.KeySize], state[chacha20.KeySize:])
	if err != nil {
		return errors.NewEntropyError("failed to key generator", err)
	}
	for i := range state {
		state[i] = 0
	}
	s.cipher = c
	s.served = 0
	s.reseeds++
	return nil
}
