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

// Package randlab 提供可重現的均勻亂數工具箱：PCG32 產生器核心（core）、
// 均勻集合操作（sampler）、以及均勻性自我檢定（Runner + recorder + stats）。
//
// 兩種使用方式：
//
//  1. 顯式實例（建議）：自己建立並持有產生器，完全掌握決定性與同步。
//
//     g := core.NewPCG32WithSeed(42)
//     v := g.Int63N(100)
//
//  2. 行程預設實例：不帶產生器的包級函數會路由到單一的行程預設實例。
//     預設實例在第一次使用時以平台熵源播種（不可重現），並由包內互斥鎖保護；
//     它是唯一帶內部同步的入口——顯式實例永遠不加鎖，由呼叫端自行同步。
//
//     v := randlab.Int63N(100)
//
// 設計重點：
//   - 決定性是核心合約：相同 seed、相同版本，輸出序列必須 bit 級一致。
//   - 此產生器「不是」密碼學安全的，輸出可被預測；需要安全亂數時請直接
//     使用平台熵源（或 core.NewPCG32System 的 system-backed 模式）。
//   - 包級函數的互斥鎖只保護預設實例的內部狀態；多 goroutine 大量取樣時
//     請改用顯式實例（一 goroutine 一份，seed 可用 Runner 的派生機制）。
package randlab

import (
	"sync"

	"github.com/zintix-labs/randlab/core"
	"github.com/zintix-labs/randlab/sampler"
)

// 行程預設實例。
//
// 延遲建立：第一次取用時以平台熵源播種。所有取用都走 defaultMu，
// 避免「環境全域變數被無同步地變更」這種難以除錯的狀態。
var (
	defaultMu   sync.Mutex
	defaultPRNG core.PRNG
)

func defaultInstance() core.PRNG {
	if defaultPRNG == nil {
		defaultPRNG = core.NewPCG32()
	}
	return defaultPRNG
}

// ResetDefault 以指定 seed 重設行程預設實例（測試/回放用）。
// 重設後預設實例變為決定性來源，直到下一次 ResetDefault。
func ResetDefault(seed uint64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultPRNG = core.NewPCG32WithSeed(seed)
}

// ============================================================
// ** 包級取樣函數（路由到預設實例） **
// ============================================================

// Uint32 同 core.RAND.Uint32，作用於預設實例。
func Uint32() uint32 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Uint32()
}

// Uint64 同 core.RAND.Uint64，作用於預設實例。
func Uint64() uint64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Uint64()
}

// Uint128 同 core.RAND.Uint128，作用於預設實例。
func Uint128() core.Uint128 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Uint128()
}

// Int31 同 core.RAND.Int31，作用於預設實例。
func Int31() int32 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int31()
}

// Int63 同 core.RAND.Int63，作用於預設實例。
func Int63() int64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int63()
}

// Int127 同 core.RAND.Int127，作用於預設實例。
func Int127() core.Uint128 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int127()
}

// Int31N 同 core.RAND.Int31N，作用於預設實例；n <= 0 時 panic。
func Int31N(n int32) int32 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int31N(n)
}

// Int63N 同 core.RAND.Int63N，作用於預設實例；n <= 0 時 panic。
func Int63N(n int64) int64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int63N(n)
}

// Int127N 同 core.RAND.Int127N，作用於預設實例；n 為零值時 panic。
func Int127N(n core.Uint128) core.Uint128 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Int127N(n)
}

// IntN 同 core.RAND.IntN，作用於預設實例；n <= 0 時 panic。
func IntN(n int) int {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().IntN(n)
}

// Float64 同 core.RAND.Float64，作用於預設實例。
func Float64() float64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Float64()
}

// Float32 同 core.RAND.Float32，作用於預設實例。
func Float32() float32 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Float32()
}

// Float64Range 同 core.RAND.Float64Range，作用於預設實例。
func Float64Range(lo, hi float64) float64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Float64Range(lo, hi)
}

// Float32Range 同 core.RAND.Float32Range，作用於預設實例。
func Float32Range(lo, hi float32) float32 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Float32Range(lo, hi)
}

// Read 同 core.RAND.Read，作用於預設實例。
func Read(p []byte) (int, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInstance().Read(p)
}

// ============================================================
// ** 包級集合操作（路由到預設實例） **
// ============================================================

// Permutation 同 sampler.Permutation，作用於預設實例。
func Permutation(n int) []int {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return sampler.Permutation(defaultInstance(), n)
}

// Shuffle 同 sampler.Shuffle，作用於預設實例。
func Shuffle[S ~[]E, E any](s S) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	sampler.Shuffle(defaultInstance(), s)
}

// Choice 同 sampler.Choice，作用於預設實例。
func Choice[S ~[]E, E any](s S) E {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return sampler.Choice(defaultInstance(), s)
}
