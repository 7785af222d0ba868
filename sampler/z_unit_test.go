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

package sampler

import (
	"testing"

	"github.com/zintix-labs/randlab/core"
)

func TestPermutationBijection(t *testing.T) {
	g := core.NewPCG32WithSeed(42)
	for _, n := range []int{0, 1, 2, 17, 100} {
		p := Permutation(g, n)
		if len(p) != n {
			t.Fatalf("n=%d: length %d", n, len(p))
		}
		seen := make([]bool, n)
		for _, v := range p {
			if v < 0 || v >= n || seen[v] {
				t.Fatalf("n=%d: not a permutation: %v", n, p)
			}
			seen[v] = true
		}
	}
}

func TestPermutationNegativePanics(t *testing.T) {
	g := core.NewPCG32WithSeed(1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for negative length")
		}
	}()
	Permutation(g, -1)
}

func TestPermutationDeterministic(t *testing.T) {
	g1 := core.NewPCG32WithSeed(9)
	g2 := core.NewPCG32WithSeed(9)
	p1 := Permutation(g1, 50)
	p2 := Permutation(g2, 50)
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("mismatch at %d: %d vs %d", i, p1[i], p2[i])
		}
	}
}

// 長度 < 2 的 Shuffle 是 no-op，且不得消耗任何亂數。
func TestShuffleShortNoDraw(t *testing.T) {
	g1 := core.NewPCG32WithSeed(3)
	g2 := core.NewPCG32WithSeed(3)

	Shuffle(g1, []int{})
	Shuffle(g1, []int{42})

	if g1.Uint32() != g2.Uint32() {
		t.Fatalf("short shuffle consumed draws")
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	g := core.NewPCG32WithSeed(7)
	s := make([]int, 200)
	for i := range s {
		s[i] = i
	}
	Shuffle(g, s)

	seen := make([]bool, len(s))
	for _, v := range s {
		if seen[v] {
			t.Fatalf("duplicate element %d after shuffle", v)
		}
		seen[v] = true
	}
}

// 鎖定抽樣序列：每個 index 恰消耗一次 Int63N(n)。
func TestShuffleDrawSequence(t *testing.T) {
	g1 := core.NewPCG32WithSeed(11)
	g2 := core.NewPCG32WithSeed(11)

	s := []string{"a", "b", "c", "d", "e"}
	Shuffle(g1, s)

	want := []string{"a", "b", "c", "d", "e"}
	n := int64(len(want))
	for i := int64(0); i < n; i++ {
		j := g2.Int63N(n)
		want[i], want[j] = want[j], want[i]
	}
	for i := range s {
		if s[i] != want[i] {
			t.Fatalf("draw sequence changed: got %v want %v", s, want)
		}
	}
}

func TestChoice(t *testing.T) {
	g := core.NewPCG32WithSeed(5)

	if v := Choice(g, []int(nil)); v != 0 {
		t.Fatalf("empty int slice: got %d want zero value", v)
	}
	if v := Choice(g, []string{}); v != "" {
		t.Fatalf("empty string slice: got %q want zero value", v)
	}
	if v := Choice(g, []int{42}); v != 42 {
		t.Fatalf("single element: got %d", v)
	}

	s := []int{10, 20, 30, 40}
	for i := 0; i < 100; i++ {
		v := Choice(g, s)
		if v != 10 && v != 20 && v != 30 && v != 40 {
			t.Fatalf("chose value not in slice: %d", v)
		}
	}
}
