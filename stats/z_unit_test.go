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

package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// 4000 次取樣、bound 4、刻意略不均勻的計數
func uniformFixture() *UniformReport {
	return &UniformReport{
		Summary: &SummaryReport{
			Source:    "pcg32",
			Seed:      42,
			Bound:     4,
			Draws:     4000,
			MinDraw:   0,
			MaxDraw:   3,
			SumDraw:   6004,
			SqSumDraw: 14020,
		},
		Dist: &DistReport{
			Bucket:  []string{"0", "1", "2", "3"},
			Collect: []int{1010, 980, 1005, 1005},
		},
	}
}

func TestDoneComputesStatistics(t *testing.T) {
	s := uniformFixture()
	s.Done()

	if !s.isDone {
		t.Fatalf("isDone not set")
	}
	if got, want := s.Summary.Mean, 6004.0/4000.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("mean: got %v want %v", got, want)
	}
	if s.Summary.Std <= 0 {
		t.Fatalf("std: %v", s.Summary.Std)
	}
	if s.Summary.MeanCI.Lo >= s.Summary.Mean || s.Summary.MeanCI.Hi <= s.Summary.Mean {
		t.Fatalf("mean CI does not bracket mean: %+v", s.Summary.MeanCI)
	}
	if s.Summary.DF != 3 {
		t.Fatalf("df: %d", s.Summary.DF)
	}
	if s.Summary.ChiSquare < 0 {
		t.Fatalf("chi2: %v", s.Summary.ChiSquare)
	}
	// 接近均勻的計數不應被檢定拒絕
	if s.Summary.PValue <= 0.05 || s.Summary.PValue > 1 {
		t.Fatalf("p-value: %v", s.Summary.PValue)
	}

	if s.Dist.Expected != 1000 {
		t.Fatalf("expected: %v", s.Dist.Expected)
	}
	freqSum := 0.0
	for i, f := range s.Dist.Freq {
		freqSum += f
		ci := s.Dist.FreqCI[i]
		if ci.Lo > f || ci.Hi < f {
			t.Fatalf("freq CI %d does not bracket freq %v: %+v", i, f, ci)
		}
	}
	if math.Abs(freqSum-1) > 1e-12 {
		t.Fatalf("freq sum: %v", freqSum)
	}
}

func TestDoneIdempotent(t *testing.T) {
	s := uniformFixture()
	s.Done()
	chi2 := s.Summary.ChiSquare
	s.Done()
	if s.Summary.ChiSquare != chi2 {
		t.Fatalf("second Done changed chi2")
	}
}

func TestDoneEmptyReport(t *testing.T) {
	s := &UniformReport{
		Summary: &SummaryReport{Source: "pcg32", Bound: 10},
		Dist:    &DistReport{Bucket: []string{"0"}, Collect: []int{0}},
	}
	s.Done()
	if s.Summary.Mean != 0 || s.Summary.Std != 0 {
		t.Fatalf("empty report produced nonzero moments")
	}
}

func TestChiSquarePValue(t *testing.T) {
	// chi2 = 0 代表完全貼合期望，p = 1
	if p := chiSquarePValue(0, 3); math.Abs(p-1) > 1e-9 {
		t.Fatalf("p(0, df=3) = %v", p)
	}
	// 巨大偏差，p 應趨近 0
	if p := chiSquarePValue(1000, 3); p > 1e-6 {
		t.Fatalf("p(1000, df=3) = %v", p)
	}
	// 對 chi2 單調遞減
	if chiSquarePValue(2, 3) <= chiSquarePValue(8, 3) {
		t.Fatalf("p-value not decreasing in chi2")
	}
}

func TestClopperPearson(t *testing.T) {
	ci := clopperPearson(50, 100, 0.95)
	if ci.Lo >= 0.5 || ci.Hi <= 0.5 {
		t.Fatalf("CI does not bracket 0.5: %+v", ci)
	}
	if ci.Lo < 0 || ci.Hi > 1 {
		t.Fatalf("CI out of [0,1]: %+v", ci)
	}

	// 邊界：k=0 時下界精確為 0，k=n 時上界精確為 1
	if ci := clopperPearson(0, 100, 0.95); ci.Lo != 0 {
		t.Fatalf("k=0 lower bound: %+v", ci)
	}
	if ci := clopperPearson(100, 100, 0.95); ci.Hi != 1 {
		t.Fatalf("k=n upper bound: %+v", ci)
	}

	// 樣本數越大，區間越窄
	narrow := clopperPearson(500, 1000, 0.95)
	wide := clopperPearson(50, 100, 0.95)
	if narrow.Hi-narrow.Lo >= wide.Hi-wide.Lo {
		t.Fatalf("CI did not narrow with n: %+v vs %+v", narrow, wide)
	}
}

func TestJsonRender(t *testing.T) {
	s := uniformFixture()
	var buf bytes.Buffer
	if err := s.WriteWith(&buf, &JsonUniformReportRender{}); err != nil {
		t.Fatalf("json render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"Source":"pcg32"`) {
		t.Fatalf("json output missing source: %s", out)
	}
	// SumDraw/SqSumDraw 是內部動差，不得外洩
	if strings.Contains(out, "SumDraw") {
		t.Fatalf("json output leaked internal moments: %s", out)
	}
}

func TestYamlRender(t *testing.T) {
	s := uniformFixture()
	var buf bytes.Buffer
	if err := s.WriteWith(&buf, &YAMLUniformReportRender{}); err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "source: pcg32") {
		t.Fatalf("yaml output missing source: %s", out)
	}
	// 一維整數序列應以 flow style 輸出
	if !strings.Contains(out, "[1010, 980, 1005, 1005]") {
		t.Fatalf("collect not rendered as flow sequence: %s", out)
	}
}
