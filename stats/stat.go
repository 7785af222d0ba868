package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// UniformReport 均勻性檢定報告
//
// 對一批 [0,bound) 的 bounded 取樣做均勻性驗證：
// 每值（或每桶）落點計數、卡方適合度檢定、各桶頻率的信賴區間。
type UniformReport struct {
	Summary *SummaryReport `json:"Summary"`
	Dist    *DistReport    `json:"Dist"`
	isDone  bool
}

type SummaryReport struct {
	Source    string  `json:"Source"`
	Seed      uint64  `json:"Seed"`
	Bound     int64   `json:"Bound"`
	Draws     int     `json:"Draws"`
	MinDraw   int64   `json:"MinDraw"`
	MaxDraw   int64   `json:"MaxDraw"`
	Mean      float64 `json:"Mean"`
	MeanCI    CI      `json:"MeanCI"`
	Std       float64 `json:"Std"`
	ChiSquare float64 `json:"ChiSquare"`
	DF        int     `json:"DF"`
	PValue    float64 `json:"PValue"`
	SumDraw   float64 `json:"-"`
	SqSumDraw float64 `json:"-"` // 平方和
}

// DistReport 落點分桶統計
//
// bound <= 桶數上限時一值一桶；否則等寬分桶（見 recorder）。
type DistReport struct {
	Bucket   []string  `json:"Bucket"`
	Collect  []int     `json:"Collect"`
	Freq     []float64 `json:"Freq"`
	FreqCI   []CI      `json:"FreqCI"`
	Expected float64   `json:"Expected"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 取樣過程因為性能原因只做整數計數與 sum/sqsum 累積，
// 卡方、p 值、信賴區間都延遲到 Done 一次性計算。
func (s *UniformReport) Done() {
	if s.isDone {
		return
	}

	n := s.Summary.Draws
	k := len(s.Dist.Collect)

	if n > 0 {
		s.Summary.Mean = s.Summary.SumDraw / float64(n)
	}
	s.Summary.Std = s.std()
	s.Summary.MeanCI = s.meanCI()

	if k > 1 && n > 0 {
		s.Dist.Expected = float64(n) / float64(k)
		s.Dist.Freq = make([]float64, k)
		s.Dist.FreqCI = make([]CI, k)
		chi2 := 0.0
		for i, c := range s.Dist.Collect {
			s.Dist.Freq[i] = float64(c) / float64(n)
			s.Dist.FreqCI[i] = clopperPearson(c, n, 0.95)
			d := float64(c) - s.Dist.Expected
			chi2 += d * d / s.Dist.Expected
		}
		s.Summary.ChiSquare = chi2
		s.Summary.DF = k - 1
		s.Summary.PValue = chiSquarePValue(chi2, k-1)
	}

	s.isDone = true
}

func (s *UniformReport) WriteWith(w io.Writer, rep UniformReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

func (s *UniformReport) StdOut(ut time.Duration) {
	s.Done()
	formatDuration(ut, s.Summary.Draws)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.Source, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

// std 回傳單次取樣值的樣本標準差
func (s *UniformReport) std() float64 {
	n := float64(s.Summary.Draws)
	if n < 2 {
		return 0
	}
	variance := (s.Summary.SqSumDraw - s.Summary.SumDraw*s.Summary.SumDraw/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// meanCI 回傳取樣平均的 95% 信賴區間
func (s *UniformReport) meanCI() CI {
	n := s.Summary.Draws
	if n < 2 {
		return CI{Lo: s.Summary.Mean, Hi: s.Summary.Mean}
	}
	se := s.Summary.Std / math.Sqrt(float64(n))
	return CI{
		Lo: s.Summary.Mean - 1.96*se,
		Hi: s.Summary.Mean + 1.96*se,
	}
}

func formatDuration(d time.Duration, draws int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(draws) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\ndps : %d draws/sec\n", sec, dps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		s = s % 60
		p.Printf("used: %dm %ds\ndps : %d draws/sec\n", m, s, dps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\ndps : %d draws/sec\n", h, m, s, dps)
}

// StdOut

func (s *UniformReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Source":      p.Sprintf("%s", s.Summary.Source),
		"Seed":        fmt.Sprintf("%d", s.Summary.Seed),
		"Bound":       p.Sprintf("%d", s.Summary.Bound),
		"Total Draws": p.Sprintf("%d", s.Summary.Draws),
		"Min / Max":   p.Sprintf("%d / %d", s.Summary.MinDraw, s.Summary.MaxDraw),
		"Mean":        p.Sprintf("%.4f", s.Summary.Mean),
		"Mean 95% CI": p.Sprintf("[%.4f,%.4f]", s.Summary.MeanCI.Lo, s.Summary.MeanCI.Hi),
		"STD":         p.Sprintf("%.4f", s.Summary.Std),
		"Chi-Square":  p.Sprintf("%.4f (df=%d)", s.Summary.ChiSquare, s.Summary.DF),
		"P-Value":     p.Sprintf("%.4f", s.Summary.PValue),
	}
	keys := []string{"Source", "Seed", "Bound", "Total Draws", "Min / Max", "Mean", "Mean 95% CI", "STD", "Chi-Square", "P-Value"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
