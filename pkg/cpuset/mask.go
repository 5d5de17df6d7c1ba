// Package cpuset provides a fixed-capacity processor affinity mask and the
// calls that apply it to, or read it back from, a thread.
package cpuset

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Capacity is the number of processor indices a Mask can hold. It matches
// the kernel's CPU_SETSIZE.
const Capacity = 1024

// Mask is a set of processor indices. The zero value is not usable; call New.
type Mask struct {
	bits *bitset.BitSet
}

// New returns an empty mask.
func New() *Mask {
	return &Mask{bits: bitset.New(Capacity)}
}

// Clear removes every processor from the mask.
func (m *Mask) Clear() {
	m.bits.ClearAll()
}

// Add marks cpu as a member. Indices outside [0, Capacity) are ignored, the
// same as CPU_SET; the kernel then rejects the resulting mask.
func (m *Mask) Add(cpu int) {
	if cpu < 0 || cpu >= Capacity {
		return
	}
	m.bits.Set(uint(cpu))
}

// Has reports whether cpu is a member.
func (m *Mask) Has(cpu int) bool {
	if cpu < 0 || cpu >= Capacity {
		return false
	}
	return m.bits.Test(uint(cpu))
}

// Count returns the number of members.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

// CPUs returns the members in ascending order.
func (m *Mask) CPUs() []int {
	cpus := make([]int, 0, m.Count())
	for i, ok := m.bits.NextSet(0); ok; i, ok = m.bits.NextSet(i + 1) {
		cpus = append(cpus, int(i))
	}
	return cpus
}

// String formats the mask as a cpu list, e.g. "0-3,5". An empty mask is "".
func (m *Mask) String() string {
	cpus := m.CPUs()
	var b strings.Builder
	for i := 0; i < len(cpus); {
		j := i
		for j+1 < len(cpus) && cpus[j+1] == cpus[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(cpus[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(cpus[j]))
		}
		i = j + 1
	}
	return b.String()
}
