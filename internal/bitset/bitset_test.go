package bitset

import (
	"errors"
	"testing"
)

var parsingTests = []string{
	"11111", "00000", "10101", "10000", "00001", "",
}

func TestFromStringRoundTrip(t *testing.T) {
	for _, s := range parsingTests {
		bs, err := FromString(s)
		if err != nil {
			t.Fatalf("FromString(%q): %v", s, err)
		}
		if actual := bs.String(); actual != s {
			t.Errorf("FromString(%q).String() = %q", s, actual)
		}
	}
}

func TestFromStringRejectsInvalidCharacters(t *testing.T) {
	if _, err := FromString("10x1"); err == nil {
		t.Fatal("expected invalid character error")
	}
}

var modificationTests = []struct {
	input    string
	index    int
	value    bool
	expected string
}{
	{"11111", 1, false, "10111"},
	{"11001", 2, true, "11101"},
	{"00000", 4, true, "00001"},
}

func TestSet(t *testing.T) {
	for _, test := range modificationTests {
		bs, err := FromString(test.input)
		if err != nil {
			t.Fatalf("FromString(%q): %v", test.input, err)
		}
		if err := bs.Set(test.index, test.value); err != nil {
			t.Fatalf("Set(%d): %v", test.index, err)
		}
		if actual := bs.String(); actual != test.expected {
			t.Errorf("Set(%q, %d, %v) = %q, expected %q", test.input, test.index, test.value, actual, test.expected)
		}
	}
}

func TestFlipAndCountAcrossWordBoundary(t *testing.T) {
	bs := New(130)
	for _, i := range []int{0, 63, 64, 129} {
		if err := bs.Flip(i); err != nil {
			t.Fatalf("flip %d: %v", i, err)
		}
	}
	if got := bs.Count(); got != 4 {
		t.Fatalf("unexpected count: got=%d want=4", got)
	}
	for _, i := range []int{0, 63, 64, 129} {
		v, err := bs.Test(i)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if !v {
			t.Fatalf("expected bit %d to be set", i)
		}
	}
	if err := bs.Flip(64); err != nil {
		t.Fatalf("flip back: %v", err)
	}
	if got := bs.Count(); got != 3 {
		t.Fatalf("unexpected count after flip back: got=%d want=3", got)
	}
}

func TestOutOfRange(t *testing.T) {
	bs := New(8)
	for _, i := range []int{-1, 8, 100} {
		if _, err := bs.Test(i); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Test(%d): expected ErrOutOfRange, got %v", i, err)
		}
		if err := bs.Set(i, true); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Set(%d): expected ErrOutOfRange, got %v", i, err)
		}
		if err := bs.Flip(i); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Flip(%d): expected ErrOutOfRange, got %v", i, err)
		}
	}
	if bs.Count() != 0 {
		t.Fatal("out-of-range writes must not modify the bit-string")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original, _ := FromString("1010")
	clone := original.Clone()
	if !clone.Equal(original) {
		t.Fatal("expected clone to equal original")
	}
	if err := clone.Flip(1); err != nil {
		t.Fatalf("flip: %v", err)
	}
	if clone.Equal(original) {
		t.Fatal("expected clone mutation to diverge from original")
	}
	if original.String() != "1010" {
		t.Fatalf("original modified through clone: %s", original)
	}
}

func TestEqualDifferentLengths(t *testing.T) {
	a, _ := FromString("10")
	b, _ := FromString("100")
	if a.Equal(b) || a.Equal(nil) {
		t.Fatal("expected bit-strings of different length to differ")
	}
}
