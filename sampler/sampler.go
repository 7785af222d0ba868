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

// Package sampler 提供建立在 core.RAND 之上的均勻集合操作：
// 隨機排列（Permutation）、就地洗牌（Shuffle）、均勻抽選（Choice）。
//
// 本包只做「均勻」操作；加權抽樣、非均勻分布不在範圍內。
// 所有操作都接受外部注入的亂數來源，決定性與否由來源決定。
package sampler

import (
	"github.com/zintix-labs/randlab/core"
	"github.com/zintix-labs/randlab/errs"
)

// Permutation 回傳 [0,n) 的均勻隨機排列，每個整數恰出現一次。
//
// 使用 inside-out Fisher-Yates：單趟完成，不需要先填 identity 序列。
// n == 0 回傳空序列；n < 0 視為呼叫端程式錯誤，以 panic 中止。
func Permutation(r core.RAND, n int) []int {
	if n < 0 {
		panic(errs.Fatalf("Permutation: invalid length %d (must be >= 0)", n))
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.IntN(i + 1)
		out[i] = out[j]
		out[j] = i
	}
	return out
}

// Shuffle 就地隨機重排 s；長度 < 2 時不動作。
//
// 每個位置 i 都從「全範圍」[0,n) 重抽 j 再交換 s[i], s[j]——
// 不是遞減範圍的教科書 Fisher-Yates。此行為是合約的一部分，
// 重現舊序列的呼叫端依賴每個 index 恰好消耗一次 Int63N(n)，請勿改寫。
func Shuffle[S ~[]E, E any](r core.RAND, s S) {
	n := int64(len(s))
	if n < 2 {
		return
	}
	for i := int64(0); i < n; i++ {
		j := r.Int63N(n)
		s[i], s[j] = s[j], s[i]
	}
}

// Choice 自 s 均勻抽選一個元素。
//
// 空序列回傳元素型別零值而非錯誤；長度檢查是呼叫端的責任。
func Choice[S ~[]E, E any](r core.RAND, s S) E {
	if len(s) == 0 {
		var zero E
		return zero
	}
	return s[r.IntN(len(s))]
}
