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

// PRNG 定義 randlab 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 為什麼合約同時要求多種寬度（32/64/128）與多種 bounded 方法，而不是只要求 Uint64？
//
// 1) 原生輸出寬度應由 PRNG 決定
//   - 本包的 PCG32 原生輸出是 32-bit；更寬的輸出（Uint64/Uint128）由多次 32-bit
//     輸出組裝而成，組裝順序是合約的一部分（第一次輸出放最高位）。
//   - 若合約只要求 Uint64，其他原生 64-bit 的實作會被迫走「裁切」路徑，
//     而 32-bit 友善的實作則被迫走「先組裝再裁切」的繞路。
//
// 2) bounded 生成的無偏策略應由 PRNG 自己實作
//   - Int31N/Int63N/Int127N 都必須是無偏的（power-of-two 用 bitmask，
//     其餘用拒絕採樣）。把這些交由實作提供，能讓每種寬度走最合適的路徑。
//
// 3) Float64 的精度與生成方式應由 PRNG 決定
//   - 本包約定 Float64 使用 53-bit mantissa 精度生成 [0,1)；Float32 由 Float64 收窄。
//
// 邊界合約（很重要，所有實作必須遵守）：
//   - 所有 bounded 方法在 bound <= 0（或 128-bit 零值）時必須以 panic 中止，
//     絕不回傳哨兵值或悄悄夾限——這屬於呼叫端的程式錯誤，不是可恢復狀況。
//   - 併發使用同一實例屬於 data race，由呼叫端自行同步（見 randlab 包的預設實例）。
type RAND interface {
	// Uint32 回傳一次原生 32-bit 輸出。
	Uint32() uint32
	// Uint64 由兩次 32-bit 輸出組裝（第一次輸出為高 32 位）。
	Uint64() uint64
	// Uint128 由四次 32-bit 輸出組裝（依序由高位往低位填入）。
	Uint128() Uint128
	// Int31 回傳非負 int32 亂數（31 bits）。
	Int31() int32
	// Int63 回傳非負 int64 亂數（63 bits）。
	Int63() int64
	// Int127 回傳最高位清零的 128-bit 亂數（127 bits）。
	Int127() Uint128
	// Int31N 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
	Int31N(n int32) int32
	// Int63N 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
	Int63N(n int64) int64
	// Int127N 回傳 [0,n) 的無偏亂數；n 為零值時 panic。
	Int127N(n Uint128) Uint128
	// IntN 回傳 [0,n) 的無偏亂數；n <= 0 時 panic。
	// 依平台原生 int 寬度分派到 31-bit 或 63-bit 路徑。
	IntN(n int) int
	// Float64 回傳 [0,1) 的浮點亂數（53-bit 精度）。
	Float64() float64
	// Float32 回傳 [0,1) 的浮點亂數（由 Float64 收窄）。
	Float32() float32
	// Float64Range 回傳 [lo,hi) 的浮點亂數；不檢查 lo <= hi，
	// 傳入反向區間會得到反向結果，屬呼叫端責任。
	Float64Range(lo, hi float64) float64
	// Float32Range 同 Float64Range，32-bit 版本。
	Float32Range(lo, hi float32) float32
	// Read 以亂數填滿整個 p，回傳值恆為 (len(p), nil)。
	Read(p []byte) (int, error)
}

// SourceFactory 定義亂數來源工廠。
type SourceFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約（很重要）：在同一個實作與同一個版本下，New(seed) 必須是「決定性」的——
	// 也就是相同的 seed 必須產生相同的初始內部狀態與輸出序列。
	//
	// 為什麼只保留 New？
	//   - randlab 的核心價值是可重現（審計/回放/併發取樣的多來源派生）。
	//   - 不帶 seed 的建構（含 system-backed 模式）由各實作自行提供具名建構子，
	//     不進入工廠合約，避免「看似可重現、實際不可重現」的誤用。
	New(seed uint64) PRNG
}

// DefaultSource 實作預設的 SourceFactory，以 PCG32 為核心。
type DefaultSource struct{}

// New 滿足合約
func (d *DefaultSource) New(seed uint64) PRNG {
	return NewPCG32WithSeed(seed)
}

func Default() *DefaultSource {
	return &DefaultSource{}
}
