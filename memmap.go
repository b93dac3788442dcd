package main

import "fmt"

// Virtual addresses are partitioned into eight fixed segments of 1000 cells
// each. Segment membership and primitive type are recoverable from the
// address alone; the VM relies on that.
type segment int

const (
	segGlobalInt segment = iota
	segGlobalFloat
	segLocalInt
	segLocalFloat
	segTempInt
	segTempFloat
	segConstInt
	segConstFloat

	segmentCount
)

const segmentSize = 1000

var segmentNames = [segmentCount]string{
	"global int", "global float",
	"local int", "local float",
	"temp int", "temp float",
	"const int", "const float",
}

func (s segment) base() int { return segmentSize * (int(s) + 1) }

func (s segment) valueType() Type {
	if s%2 == 0 {
		return typeInt
	}
	return typeFloat
}

// class collapses a segment to its storage class: 0 global, 1 local,
// 2 temp, 3 const.
func (s segment) class() int { return int(s) / 2 }

const (
	classGlobal = iota
	classLocal
	classTemp
	classConst
)

func (s segment) String() string { return segmentNames[s] }

func segmentOf(addr int) (segment, error) {
	s := addr/segmentSize - 1
	if s < 0 || s >= int(segmentCount) {
		return 0, addrError(addr)
	}
	return segment(s), nil
}

func typeOfAddr(addr int) (Type, error) {
	s, err := segmentOf(addr)
	if err != nil {
		return "", err
	}
	return s.valueType(), nil
}

type addrError int

func (addr addrError) Error() string {
	return fmt.Sprintf("address %v outside any segment", int(addr))
}

type poolError segment

func (s poolError) Error() string {
	return fmt.Sprintf("%v memory pool exhausted", segment(s))
}

// memoryMap assigns monotone virtual addresses from the typed segment
// pools. Local and temp counters are saved and reset around each function
// so every function numbers its locals and temps from the segment base;
// global and constant counters are program-wide and never reset.
type memoryMap struct {
	counters [segmentCount]int
	saved    [][4]int
}

func (m *memoryMap) alloc(s segment) (int, error) {
	if m.counters[s] >= segmentSize {
		return 0, poolError(s)
	}
	addr := s.base() + m.counters[s]
	m.counters[s]++
	return addr, nil
}

func segmentFor(class int, t Type) (segment, error) {
	base := segment(2 * class)
	switch t {
	case typeInt:
		return base, nil
	case typeFloat:
		return base + 1, nil
	}
	return 0, fmt.Errorf("no %v segment holds type %v", segmentNames[2*class], t)
}

func (m *memoryMap) assignGlobal(t Type) (int, error) {
	s, err := segmentFor(classGlobal, t)
	if err != nil {
		return 0, err
	}
	return m.alloc(s)
}

func (m *memoryMap) assignLocal(t Type) (int, error) {
	s, err := segmentFor(classLocal, t)
	if err != nil {
		return 0, err
	}
	return m.alloc(s)
}

func (m *memoryMap) assignTemp(t Type) (int, error) {
	s, err := segmentFor(classTemp, t)
	if err != nil {
		return 0, err
	}
	return m.alloc(s)
}

func (m *memoryMap) assignConst(t Type) (int, error) {
	s, err := segmentFor(classConst, t)
	if err != nil {
		return 0, err
	}
	return m.alloc(s)
}

// enterFunction saves the local and temp counters and resets them to zero
// for the function about to be compiled.
func (m *memoryMap) enterFunction() {
	m.saved = append(m.saved, [4]int{
		m.counters[segLocalInt], m.counters[segLocalFloat],
		m.counters[segTempInt], m.counters[segTempFloat],
	})
	m.counters[segLocalInt] = 0
	m.counters[segLocalFloat] = 0
	m.counters[segTempInt] = 0
	m.counters[segTempFloat] = 0
}

// exitFunction restores the counters saved by the matching enterFunction.
func (m *memoryMap) exitFunction() {
	if i := len(m.saved) - 1; i >= 0 {
		state := m.saved[i]
		m.saved = m.saved[:i]
		m.counters[segLocalInt] = state[0]
		m.counters[segLocalFloat] = state[1]
		m.counters[segTempInt] = state[2]
		m.counters[segTempFloat] = state[3]
	}
}

// functionResources reports how many local and temp cells the current
// function has consumed; the VM sizes activation records from these.
func (m *memoryMap) functionResources() resourceCounts {
	return resourceCounts{
		LocalInt:   m.counters[segLocalInt],
		LocalFloat: m.counters[segLocalFloat],
		TempInt:    m.counters[segTempInt],
		TempFloat:  m.counters[segTempFloat],
	}
}
