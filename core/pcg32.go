// Package core implements the PCG32 (XSH RR) random number generator.
//
// The PCG algorithm is designed by Melissa O'Neill (pcg-random.org).
// The generator keeps 64-bit state and emits 32-bit outputs; wider
// outputs are assembled from consecutive 32-bit draws.

package core

import (
	"math/bits"

	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/errs"
)

const (
	pcg32Multiplier = 6364136223846793005
	float64Unit     = 1 << 53
)

const is32bit = ^uint(0)>>32 == 0

// PCG32 為 64-bit 狀態、32-bit 輸出的 PCG (XSH RR) 產生器。
//
// 兩種工作模式：
//   - 演算法模式（預設）：由 state/inc 走 LCG + 輸出置換，完全決定性。
//   - system-backed 模式：跳過內部狀態，每次輸出改向平台熵源取值，
//     不可重現（見 NewPCG32System）。
//
// 不提供任何內部鎖；併發共用同一實例由呼叫端自行同步。
type PCG32 struct {
	state  uint64
	inc    uint64
	system bool
}

// --------------------------------------
// 提供三種New方式
// --------------------------------------

// NewPCG32 使用平台熵源產生 seed，建立新的 PCG32 實例（不可重現）。
func NewPCG32() *PCG32 {
	r := &PCG32{}
	r.init(sysSeed())
	return r
}

// NewPCG32WithSeed 以指定 seed 建立新的 PCG32 實例（決定性、可重現）。
// 任何 seed 都合法，包含 0。
func NewPCG32WithSeed(seed uint64) *PCG32 {
	r := &PCG32{}
	r.init(seed)
	return r
}

// NewPCG32System 建立 system-backed 實例：每次輸出都改向平台熵源取值。
//
// 熵源可用性在「建構時」就檢查；平台缺少熵源時回傳 Fatal 錯誤，
// 絕不悄悄退回演算法模式。
func NewPCG32System() (*PCG32, error) {
	if err := probeSysRand(); err != nil {
		return nil, errs.Wrap(err, "system entropy source unavailable")
	}
	return &PCG32{state: 0, inc: 0, system: true}, nil
}

//---------------------------------------
// 回傳介面方法
//---------------------------------------

// Uint32 回傳一次原生 32-bit 輸出。
func (r *PCG32) Uint32() uint32 {
	return r.nextUint32()
}

// Uint64 由兩次 32-bit 輸出組裝；第一次輸出為高 32 位。
func (r *PCG32) Uint64() uint64 {
	hi := uint64(r.nextUint32())
	lo := uint64(r.nextUint32())
	return hi<<32 | lo
}

// Uint128 由四次 32-bit 輸出組裝，依序由高位往低位填入。
func (r *PCG32) Uint128() Uint128 {
	a := uint64(r.nextUint32())
	b := uint64(r.nextUint32())
	c := uint64(r.nextUint32())
	d := uint64(r.nextUint32())
	return Uint128{Hi: a<<32 | b, Lo: c<<32 | d}
}

// Int31 返回一個"非負"的int32亂數(31 bits)
func (r *PCG32) Int31() int32 {
	return int32(r.nextUint32() &^ (1 << 31))
}

// Int63 返回一個"非負"的int64亂數(63 bits)
func (r *PCG32) Int63() int64 {
	return int64(r.Uint64() &^ (1 << 63))
}

// Int127 回傳最高位清零的 128-bit 亂數(127 bits)
func (r *PCG32) Int127() Uint128 {
	u := r.Uint128()
	u.Hi &^= 1 << 63
	return u
}

// Int31N 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
func (r *PCG32) Int31N(n int32) int32 {
	if n <= 0 {
		panic(errs.Fatalf("Int31N: invalid bound %d (must be > 0)", n))
	}
	if n&(n-1) == 0 { // n is power of two, can mask
		return r.Int31() & (n - 1)
	}
	// 拒絕採樣：max 是讓剩餘樣本空間可被 n 整除的最大可接受值。
	max := int32(uint64(1<<31-1) - (1<<31)%uint64(n))
	v := r.Int31()
	for v > max {
		v = r.Int31()
	}
	return v % n
}

// Int63N 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
func (r *PCG32) Int63N(n int64) int64 {
	if n <= 0 {
		panic(errs.Fatalf("Int63N: invalid bound %d (must be > 0)", n))
	}
	if n&(n-1) == 0 { // n is power of two, can mask
		return r.Int63() & (n - 1)
	}
	max := int64(uint64(1<<63-1) - (1<<63)%uint64(n))
	v := r.Int63()
	for v > max {
		v = r.Int63()
	}
	return v % n
}

// Int127N 回傳 [0,n) 的無偏亂數；n 為零值時 panic。
//
// 若 n 超出 127-bit 可表示範圍（最高位為 1），任何 127-bit 輸出都必然小於 n，
// 直接回傳一次 Int127。
func (r *PCG32) Int127N(n Uint128) Uint128 {
	if n.IsZero() {
		panic(errs.Fatalf("Int127N: invalid bound %s (must be > 0)", n))
	}
	if n.Hi&(1<<63) != 0 {
		return r.Int127()
	}
	if u128IsPow2(n) { // n is power of two, can mask
		return u128And(r.Int127(), u128Dec(n))
	}
	// max = (2^127 - 1) - (2^127 mod n)
	pow127 := Uint128{Hi: 1 << 63, Lo: 0}
	max127 := Uint128{Hi: 1<<63 - 1, Lo: ^uint64(0)}
	max := u128Sub(max127, u128Mod(pow127, n))
	v := r.Int127()
	for u128Cmp(v, max) > 0 {
		v = r.Int127()
	}
	return u128Mod(v, n)
}

// IntN 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
//
// 依平台原生 int 寬度分派：32-bit 平台走 31-bit 路徑，其餘走 63-bit 路徑。
func (r *PCG32) IntN(n int) int {
	if n <= 0 {
		panic(errs.Fatalf("IntN: invalid bound %d (must be > 0)", n))
	}
	if is32bit {
		return int(r.Int31N(int32(n)))
	}
	return int(r.Int63N(int64(n)))
}

// Float64 回傳 [0,1) 的浮點亂數（53-bit 精度）。
//
// 以 Int63N(2^53)/2^53 生成，確保 [0,1) 內每個 53-bit 精度可表示值
// 都能以均勻機率出現。
func (r *PCG32) Float64() float64 {
	return float64(r.Int63N(float64Unit)) / float64Unit
}

// Float32 回傳 [0,1) 的浮點亂數（由 Float64 收窄）。
func (r *PCG32) Float32() float32 {
	return float32(r.Float64())
}

// Float64Range 回傳 [lo,hi) 的浮點亂數。
//
// 不檢查 lo <= hi：傳入反向區間會得到反向結果，屬呼叫端責任。
func (r *PCG32) Float64Range(lo, hi float64) float64 {
	return (hi-lo)*r.Float64() + lo
}

// Float32Range 同 Float64Range，32-bit 版本。
func (r *PCG32) Float32Range(lo, hi float32) float32 {
	return (hi-lo)*r.Float32() + lo
}

// Read 以亂數填滿整個 p。
//
// 每次 Int63 取 63 bits，剝出 7 個 bytes（最高 7 bits 丟棄）。
// 此操作不會部分失敗：回傳值恆為 (len(p), nil)，並與 io.Reader 介面相容。
func (r *PCG32) Read(p []byte) (int, error) {
	for i := 0; i < len(p); {
		v := r.Int63()
		for b := 0; b < 7 && i < len(p); b++ {
			p[i] = byte(v)
			v >>= 8
			i++
		}
	}
	return len(p), nil
}

// Snapshot 取得當下內部狀態
func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 17)
	b = corefmt.AppendUint64(b, r.state)
	b = corefmt.AppendUint64(b, r.inc)
	if r.system {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return b, nil
}

// Restore 依 Snapshot 輸出還原內部狀態。
//
// 演算法模式下 inc 必須是奇數（全週期不變量），違反時拒絕還原。
func (r *PCG32) Restore(data []byte) error {
	if len(data) != 17 {
		return errs.NewWarn("restore pcg32 failed: bad snapshot length")
	}
	state, _ := corefmt.Uint64At(data, 0)
	inc, _ := corefmt.Uint64At(data, 8)
	system := data[16] == 1
	if !system && inc&1 == 0 {
		return errs.NewWarn("restore pcg32 failed: increment must be odd")
	}
	r.state = state
	r.inc = inc
	r.system = system
	return nil
}

//---------------------------------------
// 內部方法
//---------------------------------------

// init 依 PCG 建議的初始化流程設定內部狀態：
// 先以 stream 常數空轉一步、加入 seed、再空轉一步，
// 讓第一個可見輸出與 seed 的原始 bit pattern 去相關。
func (r *PCG32) init(seed uint64) {
	r.inc = (seed << 1) | 1 // 奇數 inc 是全週期的必要條件
	r.state = 0
	r.system = false
	r.nextUint32()
	r.state += seed
	r.nextUint32()
}

func (r *PCG32) nextUint32() uint32 {
	if r.system {
		return sysUint32()
	}
	oldstate := r.state
	r.state = oldstate*pcg32Multiplier + (r.inc | 1)
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}
