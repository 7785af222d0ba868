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
	"crypto/rand"
	"encoding/binary"

	"github.com/zintix-labs/randlab/errs"
)

// 平台熵源存取。
//
// randlab 把平台熵源視為不透明的 byte 來源（crypto/rand），只在兩處使用：
//  1. NewPCG32 的預設 seed 派生（一次性）。
//  2. system-backed 模式下的每次輸出。
//
// 可用性在 NewPCG32System 建構時以 probeSysRand 檢查；建構後的讀取失敗
// 代表平台熵源中途故障，屬不可恢復狀況，直接以 Fatal panic 中止，
// 絕不退回演算法模式或回傳偏差值。

// probeSysRand 以一次實際讀取確認平台熵源可用。
func probeSysRand() error {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return err
	}
	return nil
}

// sysSeed 自平台熵源取得一個 64-bit seed。
func sysSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(errs.Wrap(err, "system entropy source read failed"))
	}
	return binary.BigEndian.Uint64(b[:])
}

// sysUint32 自平台熵源取得一次 32-bit 輸出（system-backed 模式）。
func sysUint32() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(errs.Wrap(err, "system entropy source read failed"))
	}
	return binary.BigEndian.Uint32(b[:])
}
