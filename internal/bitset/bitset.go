// Package bitset provides a fixed-length, memory-efficient bit-string used
// as chromosome storage.
package bitset

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	pow  uint = 6
	mod  uint = 63
	word      = 64
)

var ErrOutOfRange = errors.New("bit index out of range")

// BitSet is a bit-string whose length is fixed at construction.
type BitSet struct {
	n     int
	words []uint64
}

// New returns a zeroed bit-string of length n. Negative lengths are treated
// as zero.
func New(n int) *BitSet {
	if n < 0 {
		n = 0
	}
	return &BitSet{n: n, words: make([]uint64, (n+word-1)/word)}
}

// FromString parses a string of '0' and '1' characters. The first character
// is bit 0.
func FromString(s string) (*BitSet, error) {
	b := New(len(s))
	for i, c := range s {
		switch c {
		case '1':
			b.set(i)
		case '0':
		default:
			return nil, fmt.Errorf("bitset: invalid character %q at %d", c, i)
		}
	}
	return b, nil
}

func (b *BitSet) Len() int {
	return b.n
}

// Test reports whether bit i is one.
func (b *BitSet) Test(i int) (bool, error) {
	if err := b.check(i); err != nil {
		return false, err
	}
	return b.has(i), nil
}

func (b *BitSet) Set(i int, v bool) error {
	if err := b.check(i); err != nil {
		return err
	}
	if v {
		b.set(i)
	} else {
		b.clear(i)
	}
	return nil
}

func (b *BitSet) Flip(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.words[i>>pow] ^= 1 << (uint(i) & mod)
	return nil
}

// CopyBit copies bit i of src into b. Both bit-strings must cover i.
func (b *BitSet) CopyBit(src *BitSet, i int) error {
	if err := src.check(i); err != nil {
		return err
	}
	return b.Set(i, src.has(i))
}

// Count returns the number of one bits.
func (b *BitSet) Count() int {
	total := 0
	for _, w := range b.words {
		total += bits.OnesCount64(w)
	}
	return total
}

func (b *BitSet) Clone() *BitSet {
	return &BitSet{n: b.n, words: append([]uint64(nil), b.words...)}
}

func (b *BitSet) Equal(other *BitSet) bool {
	if other == nil || b.n != other.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

func (b *BitSet) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b *BitSet) check(i int) error {
	if i < 0 || i >= b.n {
		return fmt.Errorf("%w: index=%d length=%d", ErrOutOfRange, i, b.n)
	}
	return nil
}

func (b *BitSet) has(i int) bool {
	return b.words[i>>pow]&(1<<(uint(i)&mod)) != 0
}

func (b *BitSet) set(i int) {
	b.words[i>>pow] |= 1 << (uint(i) & mod)
}

func (b *BitSet) clear(i int) {
	b.words[i>>pow] &^= 1 << (uint(i) & mod)
}
