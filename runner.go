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
	"io"
	"math"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/randlab/core"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/recorder"
	"github.com/zintix-labs/randlab/stats"
)

// Runner 用於大量取樣的均勻性驗證，可單線或多 worker 平行紀錄統計。
//
// 可重現性合約：
//   - base seed 由建構時決定（外部指定或熵源派生一次）。
//   - 多 worker 時各 worker 的 seed 由 seedMaker 自 base seed 決定性派生，
//     因此「相同 base seed + 相同 worker 數」的統計結果（計數層面）可重現。
type Runner struct {
	SourceName string // 報表上顯示的來源名稱
	MaxBuckets int    // 分桶上限；0 採 recorder 預設

	cf        core.SourceFactory
	initSeed  uint64
	seedmaker *seedMaker
}

// NewRunner 以外部指定的 base seed 建立 Runner（決定性）。
// cf 為 nil 時使用預設的 PCG32 工廠。
func NewRunner(cf core.SourceFactory, seed uint64) *Runner {
	if cf == nil {
		cf = core.Default()
	}
	return &Runner{
		SourceName: "pcg32",
		cf:         cf,
		initSeed:   seed,
		seedmaker:  newSeedMaker(seed),
	}
}

// NewRunnerAuto 以平台熵源派生 base seed 建立 Runner（不可重現）。
func NewRunnerAuto(cf core.SourceFactory) (*Runner, error) {
	seed, err := autoSeed()
	if err != nil {
		return nil, err
	}
	return NewRunner(cf, seed), nil
}

// Seed 回傳 base seed（供報表與重跑使用）。
func (r *Runner) Seed() uint64 {
	return r.initSeed
}

// RunUniform 單線取樣：連續取 draws 次 Int63N(bound)，回傳統計結果與用時。
func (r *Runner) RunUniform(bound int64, draws int, showpb bool) (*stats.UniformReport, time.Duration, error) {
	if draws < 1 {
		return nil, 0, errs.NewWarn("draws must > 0")
	}
	rec, err := recorder.NewDrawRecorder(r.SourceName, r.initSeed, bound, r.MaxBuckets)
	if err != nil {
		return nil, 0, err
	}
	g := r.cf.New(r.initSeed)

	bar := pb.StartNew(draws)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < draws; i++ {
		rec.Record(g.Int63N(bound))
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	result := rec.Done()
	result.Done()
	return result, used, nil
}

// RunUniformMP 平行取樣：mp 個 worker 各取 draws 次，合併統計後回傳。
//
// 各 worker 使用 seedMaker 派生的獨立產生器與獨立 recorder，
// 過程中無共享可變狀態，最後一次性 Merge。
func (r *Runner) RunUniformMP(bound int64, draws int, mp int, showpb bool) (*stats.UniformReport, time.Duration, error) {
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if draws < 1 {
		return nil, 0, errs.NewWarn("draws must > 0")
	}
	// 總取樣數 draws*mp 不可溢位
	if draws > math.MaxInt/mp {
		return nil, 0, errs.Warnf("draws too large for %d workers", mp)
	}

	recs := make([]*recorder.DrawRecorder, mp)
	gens := make([]core.PRNG, mp)
	for i := 0; i < mp; i++ {
		rec, err := recorder.NewDrawRecorder(r.SourceName, r.initSeed, bound, r.MaxBuckets)
		if err != nil {
			return nil, 0, err
		}
		recs[i] = rec
		gens[i] = r.cf.New(r.seedmaker.next())
	}

	bar := pb.StartNew(draws * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}

	var wg sync.WaitGroup
	wg.Add(mp)
	for i := 0; i < mp; i++ {
		go drawWorker(&wg, gens[i], recs[i], bound, draws, bar)
	}
	wg.Wait()

	used := time.Since(bar.StartTime())
	bar.Finish()

	for i := 1; i < mp; i++ {
		if err := recs[0].Merge(recs[i]); err != nil {
			return nil, 0, err
		}
	}
	result := recs[0].Done()
	result.Done()
	return result, used, nil
}

func drawWorker(wg *sync.WaitGroup, g core.PRNG, rec *recorder.DrawRecorder, bound int64, draws int, bar *pb.ProgressBar) {
	defer wg.Done()
	for i := 0; i < draws; i++ {
		rec.Record(g.Int63N(bound))
		bar.Increment()
	}
}
