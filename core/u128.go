package core

import (
	"fmt"
	"math/bits"
)

// Uint128 為 128-bit 無號整數，Hi 是高 64 位、Lo 是低 64 位。
//
// 只提供 randlab 取樣所需的最小算術集合，不是通用 big-int。
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// IsZero 回報是否為零值。
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// String 以 0x 前綴的固定 32 位十六進位呈現。
func (u Uint128) String() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}

//---------------------------------------
// 內部算術
//---------------------------------------

func u128Cmp(a, b Uint128) int {
	switch {
	case a.Hi != b.Hi:
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	case a.Lo != b.Lo:
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}

func u128Sub(a, b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func u128And(a, b Uint128) Uint128 {
	return Uint128{Hi: a.Hi & b.Hi, Lo: a.Lo & b.Lo}
}

// u128Dec 回傳 a-1；呼叫端保證 a 非零。
func u128Dec(a Uint128) Uint128 {
	return u128Sub(a, Uint128{Lo: 1})
}

func u128IsPow2(a Uint128) bool {
	if a.Hi == 0 {
		return a.Lo != 0 && a.Lo&(a.Lo-1) == 0
	}
	return a.Lo == 0 && a.Hi&(a.Hi-1) == 0
}

func u128Shl(a Uint128, k uint) Uint128 {
	switch {
	case k == 0:
		return a
	case k >= 64:
		return Uint128{Hi: a.Lo << (k - 64), Lo: 0}
	}
	return Uint128{Hi: a.Hi<<k | a.Lo>>(64-k), Lo: a.Lo << k}
}

func u128Shr1(a Uint128) Uint128 {
	return Uint128{Hi: a.Hi >> 1, Lo: a.Lo>>1 | a.Hi<<63}
}

func u128LeadingZeros(a Uint128) int {
	if a.Hi != 0 {
		return bits.LeadingZeros64(a.Hi)
	}
	return 64 + bits.LeadingZeros64(a.Lo)
}

// u128Mod 回傳 x mod m；呼叫端保證 m 非零。
//
// m 可放進 64-bit 時走 bits.Div64 的雙字除法；否則用移位相減長除法，
// 迴圈次數最多為兩者最高位的位差（<= 128）。
func u128Mod(x, m Uint128) Uint128 {
	if m.Hi == 0 {
		r := x.Hi % m.Lo
		_, rem := bits.Div64(r, x.Lo, m.Lo)
		return Uint128{Lo: rem}
	}
	if u128Cmp(x, m) < 0 {
		return x
	}
	shift := u128LeadingZeros(m) - u128LeadingZeros(x)
	d := u128Shl(m, uint(shift))
	for i := 0; i <= shift; i++ {
		if u128Cmp(x, d) >= 0 {
			x = u128Sub(x, d)
		}
		d = u128Shr1(d)
	}
	return x
}
