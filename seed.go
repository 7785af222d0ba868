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

package randlab

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"

	"github.com/zintix-labs/randlab/errs"
)

// autoSeed 自平台熵源取得一個非決定性 seed。
func autoSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, errs.Wrap(err, "auto seed failed")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// seedMaker 由單一 base seed 派生一串子 seed，供多 worker 各建一個產生器。
//
// state 走全週期 LCG（不重複），再用可逆 mix64 打散——
// 子 seed 彼此不同且與 base seed 去相關，整條派生鏈仍完全可重現。
type seedMaker struct {
	state atomic.Uint64
}

func newSeedMaker(seed uint64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(seed)
	return s
}

// 注意：此方法可能在併發環境下被多 goroutines 同時呼叫。
// 因此 state 的推進必須是原子的：
//   - 使用 CAS（Compare-And-Swap）迴圈確保每次呼叫都會取得唯一的下一個 state。
//   - 回傳值使用推進後的 state 經 mix64 打散後的結果。
func (s *seedMaker) next() uint64 {
	for {
		old := s.state.Load()
		next := old*6364136223846793005 + 1442695040888963407 // full-period LCG mod 2^64
		if s.state.CompareAndSwap(old, next) {
			return mix64(next)
		}
	}
}

// mix64：只用「可逆」的 bit 操作 + 乘奇數（mod 2^64）
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9 // 乘奇數 ⇒ mod 2^64 可逆
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
