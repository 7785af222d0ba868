// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"bytes"
	"testing"
)

// 基準向量：對初始化與 raw step 的 bit 級回歸鎖定。
// 任何改動讓這組值跑掉，代表輸出序列已不再可重現。
func TestPCG32GoldenVector(t *testing.T) {
	cases := []struct {
		seed uint64
		want []uint32
	}{
		{42, []uint32{0x40B29785, 0x0A8B3706, 0x2F091207}},
		{0, []uint32{0xE4C14788, 0x379C6516, 0x5C4AB3BB}},
	}
	for _, c := range cases {
		g := NewPCG32WithSeed(c.seed)
		for i, want := range c.want {
			if got := g.Uint32(); got != want {
				t.Fatalf("seed %d draw %d: got %#08x want %#08x", c.seed, i, got, want)
			}
		}
	}
}

func TestPCG32Determinism(t *testing.T) {
	g1 := NewPCG32WithSeed(7)
	g2 := NewPCG32WithSeed(7)
	for i := 0; i < 100; i++ {
		if g1.Uint32() != g2.Uint32() {
			t.Fatalf("Uint32 mismatch at %d", i)
		}
	}
	if g1.Int63N(1000) != g2.Int63N(1000) {
		t.Fatalf("Int63N mismatch")
	}
	if g1.Float64() != g2.Float64() {
		t.Fatalf("Float64 mismatch")
	}
}

func TestWideAssembly(t *testing.T) {
	g1 := NewPCG32WithSeed(42)
	g2 := NewPCG32WithSeed(42)

	a, b := uint64(g2.Uint32()), uint64(g2.Uint32())
	if got, want := g1.Uint64(), a<<32|b; got != want {
		t.Fatalf("Uint64: got %#x want %#x", got, want)
	}

	c, d := uint64(g2.Uint32()), uint64(g2.Uint32())
	e, f := uint64(g2.Uint32()), uint64(g2.Uint32())
	want := Uint128{Hi: c<<32 | d, Lo: e<<32 | f}
	if got := g1.Uint128(); got != want {
		t.Fatalf("Uint128: got %v want %v", got, want)
	}
}

func TestSignedNonNegative(t *testing.T) {
	g := NewPCG32WithSeed(99)
	for i := 0; i < 1000; i++ {
		if v := g.Int31(); v < 0 {
			t.Fatalf("Int31 negative: %d", v)
		}
		if v := g.Int63(); v < 0 {
			t.Fatalf("Int63 negative: %d", v)
		}
		if v := g.Int127(); v.Hi&(1<<63) != 0 {
			t.Fatalf("Int127 sign bit set: %v", v)
		}
	}
}

func TestBoundedInRange(t *testing.T) {
	g := NewPCG32WithSeed(5)
	bounds31 := []int32{1, 2, 7, 8, 100, 1 << 20, 1<<31 - 1}
	bounds63 := []int64{1, 3, 10, 1 << 10, 1<<53 + 1, 1<<63 - 1}
	for i := 0; i < 2000; i++ {
		for _, n := range bounds31 {
			if v := g.Int31N(n); v < 0 || v >= n {
				t.Fatalf("Int31N(%d) out of range: %d", n, v)
			}
		}
		for _, n := range bounds63 {
			if v := g.Int63N(n); v < 0 || v >= n {
				t.Fatalf("Int63N(%d) out of range: %d", n, v)
			}
		}
	}
}

// 頻率檢查：bounded 取樣的每個值出現頻率須貼近 1/n。
// 固定 seed 下結果是決定性的；容忍帶以 ±10σ 計，遠寬於正常波動。
func TestBoundedFrequency(t *testing.T) {
	const draws = 100000

	// 非 power-of-two：走拒絕採樣路徑
	g := NewPCG32WithSeed(42)
	counts := make([]int, 10)
	for i := 0; i < draws; i++ {
		counts[g.Int63N(10)]++
	}
	for v, c := range counts {
		f := float64(c) / draws
		if f < 0.09 || f > 0.11 {
			t.Fatalf("Int63N(10) freq[%d] = %v, outside [0.09,0.11]", v, f)
		}
	}

	// power-of-two：走 bitmask 路徑，低位不可偏
	g = NewPCG32WithSeed(43)
	counts = make([]int, 8)
	for i := 0; i < draws; i++ {
		counts[g.Int31N(8)]++
	}
	for v, c := range counts {
		f := float64(c) / draws
		if f < 0.113 || f > 0.137 {
			t.Fatalf("Int31N(8) freq[%d] = %v, outside [0.113,0.137]", v, f)
		}
	}
}

// power-of-two 的 fast path 必須與「一次 raw 取樣 + bitmask」bit 級一致。
func TestBoundedPowerOfTwoMask(t *testing.T) {
	g1 := NewPCG32WithSeed(11)
	g2 := NewPCG32WithSeed(11)
	for i := 0; i < 100; i++ {
		if got, want := g1.Int63N(1<<40), g2.Int63()&(1<<40-1); got != want {
			t.Fatalf("Int63N pow2 mismatch: got %d want %d", got, want)
		}
	}
	g3 := NewPCG32WithSeed(12)
	g4 := NewPCG32WithSeed(12)
	for i := 0; i < 100; i++ {
		if got, want := g3.Int31N(64), g4.Int31()&63; got != want {
			t.Fatalf("Int31N pow2 mismatch: got %d want %d", got, want)
		}
	}
}

func TestInt127NInRange(t *testing.T) {
	g := NewPCG32WithSeed(21)
	bounds := []Uint128{
		{Hi: 0, Lo: 1},
		{Hi: 0, Lo: 10},
		{Hi: 0, Lo: 1 << 40},
		{Hi: 1, Lo: 0},
		{Hi: 1 << 20, Lo: 12345},
	}
	for i := 0; i < 500; i++ {
		for _, n := range bounds {
			v := g.Int127N(n)
			if u128Cmp(v, n) >= 0 {
				t.Fatalf("Int127N(%v) out of range: %v", n, v)
			}
		}
	}
}

func TestInvalidBoundPanics(t *testing.T) {
	g := NewPCG32WithSeed(1)
	cases := []func(){
		func() { g.Int31N(0) },
		func() { g.Int31N(-1) },
		func() { g.Int63N(0) },
		func() { g.Int63N(-5) },
		func() { g.IntN(0) },
		func() { g.IntN(-7) },
		func() { g.Int127N(Uint128{}) },
	}
	for i, fn := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("case %d: expected panic for non-positive bound", i)
				}
			}()
			fn()
		}()
	}
}

func TestFloat64HalfOpen(t *testing.T) {
	g := NewPCG32WithSeed(123)
	for i := 0; i < 100000; i++ {
		if v := g.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", v)
		}
	}
	g2 := NewPCG32WithSeed(124)
	for i := 0; i < 1000; i++ {
		if v := g2.Float64Range(3, 7); v < 3 || v >= 7 {
			t.Fatalf("Float64Range out of [3,7): %v", v)
		}
		if v := g2.Float32(); v < 0 || v >= 1 {
			t.Fatalf("Float32 out of [0,1): %v", v)
		}
	}
}

// Read 必須填滿整個 buffer：與手動以 Int63 剝 7 bytes 的結果逐 byte 比對。
func TestReadFillsExactly(t *testing.T) {
	for _, size := range []int{0, 1, 6, 7, 8, 23, 64} {
		g1 := NewPCG32WithSeed(77)
		g2 := NewPCG32WithSeed(77)

		buf := make([]byte, size)
		n, err := g1.Read(buf)
		if err != nil || n != size {
			t.Fatalf("Read(%d): n=%d err=%v", size, n, err)
		}

		want := make([]byte, size)
		for i := 0; i < size; {
			v := g2.Int63()
			for b := 0; b < 7 && i < size; b++ {
				want[i] = byte(v)
				v >>= 8
				i++
			}
		}
		if !bytes.Equal(buf, want) {
			t.Fatalf("Read(%d) mismatch:\n got %x\nwant %x", size, buf, want)
		}
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	g := NewPCG32WithSeed(42)
	g.Uint32()

	snap, err := g.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	want := []uint32{g.Uint32(), g.Uint32(), g.Uint32()}

	g2 := NewPCG32WithSeed(0)
	if err := g2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	for i, w := range want {
		if got := g2.Uint32(); got != w {
			t.Fatalf("post-restore draw %d: got %#x want %#x", i, got, w)
		}
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	g := NewPCG32WithSeed(1)
	if err := g.Restore([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short snapshot")
	}
	// 演算法模式下偶數 inc 違反全週期不變量
	bad := make([]byte, 17)
	if err := g.Restore(bad); err == nil {
		t.Fatalf("expected error for even increment")
	}
}

func TestSystemBackedMode(t *testing.T) {
	g, err := NewPCG32System()
	if err != nil {
		t.Skipf("platform entropy source unavailable: %v", err)
	}
	// system-backed 模式仍須遵守所有輸出域合約
	for i := 0; i < 100; i++ {
		if v := g.Int63N(10); v < 0 || v >= 10 {
			t.Fatalf("system Int63N out of range: %d", v)
		}
		if v := g.Float64(); v < 0 || v >= 1 {
			t.Fatalf("system Float64 out of range: %v", v)
		}
	}
	buf := make([]byte, 16)
	if n, err := g.Read(buf); n != 16 || err != nil {
		t.Fatalf("system Read: n=%d err=%v", n, err)
	}
}

func TestU128Mod(t *testing.T) {
	cases := []struct {
		x, m, want Uint128
	}{
		{Uint128{0, 100}, Uint128{0, 7}, Uint128{0, 2}},
		{Uint128{1, 0}, Uint128{0, 3}, Uint128{0, 1}}, // 2^64 mod 3 == 1
		{Uint128{5, 9}, Uint128{5, 9}, Uint128{0, 0}},
		{Uint128{5, 9}, Uint128{5, 10}, Uint128{5, 9}},
		{Uint128{8, 4}, Uint128{3, 0}, Uint128{2, 4}},
	}
	for i, c := range cases {
		if got := u128Mod(c.x, c.m); got != c.want {
			t.Fatalf("case %d: u128Mod(%v,%v) = %v, want %v", i, c.x, c.m, got, c.want)
		}
	}
}
