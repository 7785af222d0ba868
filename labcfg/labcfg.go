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

// Package labcfg 定義 CLI / server 共用的執行設定檔（YAML）。
//
// 設定檔只描述「怎麼跑」（seed、次數、bound、worker 數、輸出格式），
// 不描述演算法本身；演算法合約都在 core。
package labcfg

import (
	"bytes"
	"fmt"

	"github.com/zintix-labs/randlab/errs"
	"gopkg.in/yaml.v3"
)

// Profile 一次均勻性檢定執行的完整設定。
type Profile struct {
	Name       string  `yaml:"name"        json:"name"`
	Seed       *uint64 `yaml:"seed"        json:"seed"`    // nil = 以平台熵源派生（不可重現）
	Bound      int64   `yaml:"bound"       json:"bound"`   // 取樣上界，Int63N(bound)
	Draws      int     `yaml:"draws"       json:"draws"`   // 每個 worker 的取樣次數
	Workers    int     `yaml:"workers"     json:"workers"` // 省略時為 1
	MaxBuckets int     `yaml:"max_buckets" json:"max_buckets"`
	Format     string  `yaml:"format"      json:"format"` // table / json / yaml
}

// Load 解析並驗證一份 Profile。
//
// 嚴格模式解碼：多寫/拼錯欄位直接報錯，避免設定檔悄悄失效。
func Load(data []byte) (*Profile, error) {
	p := new(Profile)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "decode profile failed")
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

// init 填入預設值並執行最基本的設定檔檢查。
func (p *Profile) init() error {
	if p.Name == "" {
		p.Name = "uniform-check"
	}
	if p.Workers == 0 {
		p.Workers = 1
	}
	if p.Format == "" {
		p.Format = "table"
	}
	return p.valid()
}

func (p *Profile) valid() error {
	if p.Bound <= 0 {
		return errs.NewFatal(fmt.Sprintf("profile %s err: bound must > 0, got %d", p.Name, p.Bound))
	}
	if p.Draws < 1 {
		return errs.NewFatal(fmt.Sprintf("profile %s err: draws must > 0, got %d", p.Name, p.Draws))
	}
	if p.Workers < 1 {
		return errs.NewFatal(fmt.Sprintf("profile %s err: workers must > 0, got %d", p.Name, p.Workers))
	}
	if p.MaxBuckets < 0 {
		return errs.NewFatal(fmt.Sprintf("profile %s err: max_buckets must >= 0, got %d", p.Name, p.MaxBuckets))
	}
	switch p.Format {
	case "table", "json", "yaml":
	default:
		return errs.NewFatal(fmt.Sprintf("profile %s err: unknown format %q", p.Name, p.Format))
	}
	return nil
}
