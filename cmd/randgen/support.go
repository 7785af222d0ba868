package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/core"
	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/labcfg"
	"github.com/zintix-labs/randlab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	mode     string
	width    int
	n        int
	bound    int64
	workers  int
	seed     uint64
	seedSet  bool
	enc      string
	format   string
	profile  string
	stateIn  string
	stateOut string
}

type seedFlag struct{ c *config }

func (f seedFlag) String() string { return strconv.FormatUint(f.c.seed, 10) }
func (f seedFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	f.c.seed = u
	f.c.seedSet = true
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.StringVar(&cfg.mode, "mode", "gen", "gen: emit values, check: uniformity check")
	flag.IntVar(&cfg.width, "width", 64, "output width: 32, 64 or 128 (gen mode)")
	flag.IntVar(&cfg.n, "n", 10, "number of values (gen) / draws per worker (check)")
	flag.Int64Var(&cfg.bound, "bound", 0, "bounded draw upper bound; 0 = raw output (gen mode)")
	flag.IntVar(&cfg.workers, "worker", 1, "number of workers (check mode)")
	flag.Var(seedFlag{cfg}, "seed", "uint64 seed; omitted = entropy-derived")
	flag.StringVar(&cfg.enc, "enc", "dec", "gen output encoding: dec, hex, bytes-base64")
	flag.StringVar(&cfg.format, "format", "table", "check report format: table, json, yaml")
	flag.StringVar(&cfg.profile, "profile", "", "yaml profile path (check mode, overrides flags)")
	flag.StringVar(&cfg.stateIn, "state-in", "", "resume from a state file instead of seeding (gen mode)")
	flag.StringVar(&cfg.stateOut, "state-out", "", "write generator state to file after emitting (gen mode)")

	flag.Parse()
}

// 這裡解析並分支要執行的模式
func execute() {
	switch cfg.mode {
	case "gen":
		cfg.validGen()
		executeGen()
	case "check":
		executeCheck()
	default:
		log.Fatal("value err : mode must be gen or check")
	}
}

func executeGen() {
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	var g *core.PCG32
	if cfg.stateIn != "" {
		g = restoreState(cfg.stateIn)
		p.Printf("%s[STATE:%s] [WIDTH:%d] [N:%d]%s\n", green, cfg.stateIn, cfg.width, cfg.n, reset)
	} else {
		seed := cfg.seed
		if !cfg.seedSet {
			seed = core.NewPCG32().Uint64()
		}
		g = core.NewPCG32WithSeed(seed)
		p.Printf("%s[SEED:%d] [WIDTH:%d] [N:%d]%s\n", green, seed, cfg.width, cfg.n, reset)
	}
	defer func() {
		if cfg.stateOut != "" {
			saveState(cfg.stateOut, g)
		}
	}()

	if cfg.enc == "bytes-base64" {
		buf := make([]byte, cfg.n)
		_, _ = g.Read(buf)
		fmt.Println(corefmt.EncodeBase64(buf))
		return
	}

	for i := 0; i < cfg.n; i++ {
		switch {
		case cfg.bound > 0 && cfg.width == 32:
			emit(uint64(g.Int31N(int32(cfg.bound))))
		case cfg.bound > 0:
			emit(uint64(g.Int63N(cfg.bound)))
		case cfg.width == 32:
			emit(uint64(g.Uint32()))
		case cfg.width == 128:
			fmt.Println(g.Uint128())
		default:
			emit(g.Uint64())
		}
	}
}

// restoreState 自 blob frame 檔案還原產生器（搭配 -state-out 續抽）。
func restoreState(path string) *core.PCG32 {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	snap, err := corefmt.ReadBlobFrame(f, 1024)
	if err != nil {
		log.Fatal(err)
	}
	g := core.NewPCG32WithSeed(0)
	if err := g.Restore(snap); err != nil {
		log.Fatal(err)
	}
	return g
}

func saveState(path string, g *core.PCG32) {
	snap, err := g.Snapshot()
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := corefmt.WriteBlobFrame(f, snap); err != nil {
		log.Fatal(err)
	}
}

func emit(v uint64) {
	if cfg.enc == "hex" {
		fmt.Printf("0x%016x\n", v)
		return
	}
	fmt.Println(v)
}

func executeCheck() {
	var prof *labcfg.Profile
	if cfg.profile != "" {
		data, err := os.ReadFile(cfg.profile)
		if err != nil {
			log.Fatal(err)
		}
		p, err := labcfg.Load(data)
		if err != nil {
			log.Fatal(err)
		}
		prof = p
	} else {
		prof = profileFromFlags()
	}

	var runner *randlab.Runner
	if prof.Seed != nil {
		runner = randlab.NewRunner(core.Default(), *prof.Seed)
	} else {
		r, err := randlab.NewRunnerAuto(core.Default())
		if err != nil {
			log.Fatal(err)
		}
		runner = r
	}
	runner.MaxBuckets = prof.MaxBuckets

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Printf("%s[CHECK:%s] [SEED:%d] [BOUND:%d] [WORKERS:%d] [DRAWS:%d]%s\n",
		green, prof.Name, runner.Seed(), prof.Bound, prof.Workers, prof.Workers*prof.Draws, reset)

	report, used, err := runner.RunUniformMP(prof.Bound, prof.Draws, prof.Workers, true)
	if err != nil {
		log.Fatal(err)
	}

	switch prof.Format {
	case "json":
		if err := report.WriteWith(os.Stdout, &stats.JsonUniformReportRender{}); err != nil {
			log.Fatal(err)
		}
	case "yaml":
		if err := report.WriteWith(os.Stdout, &stats.YAMLUniformReportRender{}); err != nil {
			log.Fatal(err)
		}
	default:
		report.StdOut(used)
	}
}

func profileFromFlags() *labcfg.Profile {
	prof := &labcfg.Profile{
		Name:    "uniform-check",
		Bound:   cfg.bound,
		Draws:   cfg.n,
		Workers: cfg.workers,
		Format:  cfg.format,
	}
	if cfg.seedSet {
		v := cfg.seed
		prof.Seed = &v
	}
	// flag 路徑也走同一套驗證，與 yaml profile 行為一致
	if prof.Workers < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if prof.Bound <= 0 {
		log.Fatal("value err : check mode needs -bound > 0")
	}
	if prof.Draws < 1 {
		log.Fatal("value err : n must > 0")
	}
	return prof
}

func (cfg *config) validGen() {
	p := message.NewPrinter(language.English)

	if cfg.n < 1 {
		log.Fatal("value err : n must > 0")
	}
	// 單次輸出太多直接切掉，避免誤操作灌爆終端
	if cfg.n > 100_000_000 {
		p.Printf("too many values: %d resized to 100M\n", cfg.n)
		cfg.n = 100_000_000
	}

	switch cfg.width {
	case 32, 64, 128:
	default:
		log.Fatal("value err : width must be 32, 64 or 128")
	}

	if cfg.bound < 0 {
		log.Fatal("value err : bound must >= 0")
	}
	if cfg.bound > 0 && cfg.width == 128 {
		log.Fatal("value err : bound is not supported for width 128")
	}
	if cfg.bound > (1<<31-1) && cfg.width == 32 {
		log.Fatal("value err : bound exceeds 31-bit range")
	}

	switch cfg.enc {
	case "dec", "hex", "bytes-base64":
	default:
		log.Fatal("value err : enc must be dec, hex or bytes-base64")
	}
}
