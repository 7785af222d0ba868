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

package labcfg

import "testing"

func TestLoadFull(t *testing.T) {
	data := []byte(`
name: nightly
seed: 42
bound: 1000
draws: 100000
workers: 4
max_buckets: 32
format: json
`)
	p, err := Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "nightly" || p.Bound != 1000 || p.Draws != 100000 {
		t.Fatalf("fields: %+v", p)
	}
	if p.Seed == nil || *p.Seed != 42 {
		t.Fatalf("seed: %v", p.Seed)
	}
	if p.Workers != 4 || p.MaxBuckets != 32 || p.Format != "json" {
		t.Fatalf("fields: %+v", p)
	}
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load([]byte("bound: 10\ndraws: 100\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "uniform-check" || p.Workers != 1 || p.Format != "table" {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.Seed != nil {
		t.Fatalf("seed should stay nil when omitted")
	}
}

// 嚴格模式：拼錯欄位不能悄悄被吞掉
func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load([]byte("bound: 10\ndraws: 100\nbuond: 5\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := []string{
		"bound: 0\ndraws: 100\n",
		"bound: 10\ndraws: 0\n",
		"bound: 10\ndraws: 100\nworkers: -1\n",
		"bound: 10\ndraws: 100\nmax_buckets: -5\n",
		"bound: 10\ndraws: 100\nformat: xml\n",
	}
	for i, c := range cases {
		if _, err := Load([]byte(c)); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
