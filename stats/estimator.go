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
	"gonum.org/v1/gonum/stat/distuv"
)

// 估計工具：均勻性檢定所需的分布運算都集中在這裡，
// 報表層（stat.go）只拿結果，不直接依賴 gonum。

// chiSquarePValue 回傳卡方統計量在自由度 df 下的右尾 p 值。
//
// p 值太小代表觀測分布偏離均勻假設；對一個正確的均勻來源，
// 反覆取樣得到的 p 值本身應近似均勻分布於 (0,1)。
func chiSquarePValue(chi2 float64, df int) float64 {
	if df < 1 || chi2 < 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return dist.Survival(chi2)
}

// clopperPearson 回傳二項比例 k/n 的 Clopper-Pearson 信賴區間。
//
// 用 Beta 分位數的精確法，不用常態近似：
// 桶數多時單桶期望次數可能很小，常態近似會失真。
func clopperPearson(k, n int, confidence float64) (ci CI) {
	if n <= 0 {
		return CI{}
	}
	alpha := 1 - confidence
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}
