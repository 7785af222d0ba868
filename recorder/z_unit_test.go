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

package recorder

import (
	"testing"
)

func TestNewDrawRecorderBucketLayout(t *testing.T) {
	// 小 bound：一值一桶
	r, err := NewDrawRecorder("pcg32", 1, 6, 64)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	if len(r.collect) != 6 || r.width != 1 {
		t.Fatalf("small bound: buckets=%d width=%d", len(r.collect), r.width)
	}
	if r.bucketStr[0] != "0" || r.bucketStr[5] != "5" {
		t.Fatalf("bucket labels: %v", r.bucketStr)
	}

	// 大 bound：等寬分桶
	r, err = NewDrawRecorder("pcg32", 1, 1000, 64)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	if len(r.collect) > 64 || r.width*int64(len(r.collect)) < 1000 {
		t.Fatalf("large bound: buckets=%d width=%d", len(r.collect), r.width)
	}
	if r.bucketStr[0] != "[0,16)" {
		t.Fatalf("first bucket label: %q", r.bucketStr[0])
	}
}

func TestNewDrawRecorderBadBound(t *testing.T) {
	if _, err := NewDrawRecorder("pcg32", 1, 0, 64); err == nil {
		t.Fatalf("expected error for bound 0")
	}
	if _, err := NewDrawRecorder("pcg32", 1, -3, 64); err == nil {
		t.Fatalf("expected error for negative bound")
	}
}

func TestRecordAndDone(t *testing.T) {
	r, err := NewDrawRecorder("pcg32", 42, 4, 64)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	for _, v := range []int64{0, 1, 1, 2, 3, 3, 3} {
		r.Record(v)
	}
	if r.Draws() != 7 {
		t.Fatalf("draws: %d", r.Draws())
	}

	rep := r.Done()
	if rep.Summary.MinDraw != 0 || rep.Summary.MaxDraw != 3 {
		t.Fatalf("min/max: %d/%d", rep.Summary.MinDraw, rep.Summary.MaxDraw)
	}
	wantCollect := []int{1, 2, 1, 3}
	for i, c := range rep.Dist.Collect {
		if c != wantCollect[i] {
			t.Fatalf("collect[%d]=%d want %d", i, c, wantCollect[i])
		}
	}
	if rep.Summary.SumDraw != 13 {
		t.Fatalf("sum: %v", rep.Summary.SumDraw)
	}
}

func TestRecordOutOfRangePanics(t *testing.T) {
	r, err := NewDrawRecorder("pcg32", 1, 10, 64)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	for _, v := range []int64{-1, 10, 999} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for draw %d", v)
				}
			}()
			r.Record(v)
		}()
	}
}

func TestMerge(t *testing.T) {
	a, _ := NewDrawRecorder("pcg32", 1, 8, 64)
	b, _ := NewDrawRecorder("pcg32", 2, 8, 64)
	for _, v := range []int64{0, 1, 2} {
		a.Record(v)
	}
	for _, v := range []int64{5, 6, 7, 7} {
		b.Record(v)
	}
	if err := a.Merge(b); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if a.Draws() != 7 {
		t.Fatalf("merged draws: %d", a.Draws())
	}
	rep := a.Done()
	if rep.Summary.MinDraw != 0 || rep.Summary.MaxDraw != 7 {
		t.Fatalf("merged min/max: %d/%d", rep.Summary.MinDraw, rep.Summary.MaxDraw)
	}
	if rep.Dist.Collect[7] != 2 {
		t.Fatalf("merged collect[7]=%d", rep.Dist.Collect[7])
	}

	// 佈局不一致必須拒絕
	c, _ := NewDrawRecorder("pcg32", 3, 9, 64)
	if err := a.Merge(c); err == nil {
		t.Fatalf("expected layout mismatch error")
	}

	if err := a.Merge(nil); err != nil {
		t.Fatalf("merge nil: %v", err)
	}
}
