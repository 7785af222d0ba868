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
	"fmt"
	"math"

	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/stats"
)

const defaultMaxBuckets = 64

// DrawRecorder 取樣紀錄員
//
// 對一批 [0,bound) 的取樣做落點計數與動差累積，
// 並透過 Done 輸出均勻性統計報表。
//
// 熱路徑（Record）只做整數運算；統計換算集中在 Done。
// 單一 DrawRecorder 不做內部同步：多 worker 情境請一人一份，最後 Merge。
type DrawRecorder struct {
	Source string
	Seed   uint64
	Bound  int64

	bucketStr []string
	width     int64 // 每桶涵蓋的值個數；一值一桶時為 1
	collect   []int
	draws     int
	sum       float64
	sqsum     float64 // 平方和
	minDraw   int64
	maxDraw   int64
}

// NewDrawRecorder 建立取樣紀錄員。
//
// bound 必須 > 0。maxBuckets <= 0 時採預設桶數；
// bound <= 桶數上限時一值一桶（可做逐值頻率檢定），否則等寬分桶。
func NewDrawRecorder(source string, seed uint64, bound int64, maxBuckets int) (*DrawRecorder, error) {
	if bound <= 0 {
		return nil, errs.Fatalf("bound err %d: must > 0", bound)
	}
	if maxBuckets <= 0 {
		maxBuckets = defaultMaxBuckets
	}

	r := &DrawRecorder{
		Source:  source,
		Seed:    seed,
		Bound:   bound,
		minDraw: math.MaxInt64,
		maxDraw: -1,
	}

	if bound <= int64(maxBuckets) {
		r.width = 1
		r.collect = make([]int, bound)
		r.bucketStr = make([]string, bound)
		for i := range r.bucketStr {
			r.bucketStr[i] = fmt.Sprintf("%d", i)
		}
		return r, nil
	}

	k := int64(maxBuckets)
	r.width = (bound + k - 1) / k
	buckets := (bound + r.width - 1) / r.width
	r.collect = make([]int, buckets)
	r.bucketStr = make([]string, buckets)
	for i := range r.bucketStr {
		lo := int64(i) * r.width
		hi := min(lo+r.width, bound)
		r.bucketStr[i] = fmt.Sprintf("[%d,%d)", lo, hi)
	}
	return r, nil
}

// Record 紀錄一次取樣。
//
// v 落在 [0,Bound) 之外代表上游產生器已壞（bounded 取樣合約被打破），
// 屬不可恢復狀況，直接以 Fatal panic 中止，不靜默吞掉。
func (r *DrawRecorder) Record(v int64) {
	if v < 0 || v >= r.Bound {
		panic(errs.Fatalf("draw %d out of [0,%d): generator contract broken", v, r.Bound))
	}
	r.collect[v/r.width]++
	r.draws++
	fv := float64(v)
	r.sum += fv
	r.sqsum += fv * fv
	if v < r.minDraw {
		r.minDraw = v
	}
	if v > r.maxDraw {
		r.maxDraw = v
	}
}

// Merge 併入另一份相同設定的紀錄（多 worker 收斂用）。
func (r *DrawRecorder) Merge(o *DrawRecorder) error {
	if o == nil {
		return nil
	}
	if o.Bound != r.Bound || len(o.collect) != len(r.collect) {
		return errs.NewFatal("merge recorder failed: bucket layout mismatch")
	}
	for i, c := range o.collect {
		r.collect[i] += c
	}
	r.draws += o.draws
	r.sum += o.sum
	r.sqsum += o.sqsum
	if o.minDraw < r.minDraw {
		r.minDraw = o.minDraw
	}
	if o.maxDraw > r.maxDraw {
		r.maxDraw = o.maxDraw
	}
	return nil
}

// Draws 回傳已紀錄的取樣次數。
func (r *DrawRecorder) Draws() int {
	return r.draws
}

// Done 輸出統計報表（尚未 Done()，由呼叫端決定時機）。
func (r *DrawRecorder) Done() *stats.UniformReport {
	minDraw := r.minDraw
	if r.draws == 0 {
		minDraw = 0
	}
	maxDraw := max(r.maxDraw, 0)
	collect := make([]int, len(r.collect))
	copy(collect, r.collect)

	return &stats.UniformReport{
		Summary: &stats.SummaryReport{
			Source:    r.Source,
			Seed:      r.Seed,
			Bound:     r.Bound,
			Draws:     r.draws,
			MinDraw:   minDraw,
			MaxDraw:   maxDraw,
			SumDraw:   r.sum,
			SqSumDraw: r.sqsum,
		},
		Dist: &stats.DistReport{
			Bucket:  r.bucketStr,
			Collect: collect,
		},
	}
}
