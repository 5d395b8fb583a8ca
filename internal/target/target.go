package target

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Target describes the data layout the type table computes sizes against.
type Target struct {
	Name     string `toml:"name"`
	PtrSize  int    `toml:"ptr_size"`
	PtrAlign int    `toml:"ptr_align"`
	IntSize  int    `toml:"int_size"`
	IntAlign int    `toml:"int_align"`
}

// X86_64 returns the default 64-bit target.
func X86_64() Target {
	return Target{
		Name:     "x86_64",
		PtrSize:  8,
		PtrAlign: 8,
		IntSize:  4,
		IntAlign: 4,
	}
}

// Load reads a target description from a TOML file.
func Load(path string) (Target, error) {
	var t Target
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Target{}, err
	}
	if err := t.Validate(); err != nil {
		return Target{}, fmt.Errorf("target %q: %w", path, err)
	}
	return t, nil
}

// Validate rejects targets the layout arithmetic cannot work with.
func (t Target) Validate() error {
	if t.PtrSize <= 0 || t.IntSize <= 0 {
		return fmt.Errorf("sizes must be positive (ptr_size=%d, int_size=%d)", t.PtrSize, t.IntSize)
	}
	if !isPowerOfTwo(t.PtrAlign) || !isPowerOfTwo(t.IntAlign) {
		return fmt.Errorf("alignments must be powers of two (ptr_align=%d, int_align=%d)", t.PtrAlign, t.IntAlign)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
