// Command zabbrev selects a near-optimal set of Z-machine abbreviation
// strings for a compiled story file's source material.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	zabbrev "github.com/xyzzy-if/zabbrev"
	"github.com/xyzzy-if/zabbrev/internal/adapter"
)

const usage = `usage: zabbrev [options] <directory | gametext.txt>

  -n N                  abbreviation count (default 96)
  -a                    build a custom alphabet from the corpus
  -a0 s26 -a1 s26 -a2 s23   explicit alphabet override
  -r3                   force rounding unit 3 regardless of version
  -v1 .. -v8            target z-machine version (auto-detected if omitted)
  -x0 | -x1 | -x2 [n] | -x3 [n1] [n2]
                        compression level and pass budgets
  -c0 | -cu | -c1       force Latin-1 / UTF-8 / Latin-1 character-set
                        detection (default: auto-detect)
  -b                    throw back low scorers during selection
  -o 0|1|2 | input|inform|zap
                        output dialect override
  --onlyrefactor        skip selection, emit the long-duplicate report
  -i                    force Inform6 transcript parsing
  --infodump file --txd file
                        read via the Infodump+TXD path
  --debug               trace refinement decisions
  -v                    print version
  -h                    show this help
`

type options struct {
	path         string
	infodump     string
	txd          string
	forceInform6 bool
	dialect      string
	a0, a1, a2   string
	charset      adapter.Charset
	versionSet   bool
	cfg          zabbrev.Config
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, errHelp) {
			fmt.Fprint(os.Stdout, usage)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "zabbrev:", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "zabbrev:", err)
		os.Exit(1)
	}
}

var errHelp = errors.New("help requested")

func parseArgs(args []string) (*options, error) {
	opts := &options{cfg: zabbrev.DefaultConfig()}
	versionSeen := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h", arg == "--help":
			return nil, errHelp
		case arg == "-v" && !versionSeen:
			fmt.Println("zabbrev (abbreviation selector)")
			os.Exit(0)
		case arg == "-n":
			i++
			n, err := nextInt(args, i, "-n")
			if err != nil {
				return nil, err
			}
			opts.cfg.N = n
		case arg == "-a":
			opts.cfg.BuildCustomAlphabet = true
		case arg == "-a0", arg == "-a1", arg == "-a2":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires an argument", arg)
			}
			opts.overrideAlphabet(arg, args[i])
		case arg == "-r3":
			opts.cfg.ForceR3 = true
		case arg == "-c0", arg == "-c1":
			opts.charset = adapter.CharsetLatin1
		case arg == "-cu":
			opts.charset = adapter.CharsetUTF8
		case isVersionFlag(arg):
			v, _ := strconv.Atoi(arg[2:])
			opts.cfg.ZVersion = v
			opts.versionSet = true
			versionSeen = true
		case arg == "-x0":
			opts.cfg.Level = zabbrev.LevelNone
		case arg == "-x1":
			opts.cfg.Level = zabbrev.LevelBoundary
		case arg == "-x2":
			opts.cfg.Level = zabbrev.LevelNormal
			if n, ok := peekInt(args, i+1); ok {
				opts.cfg.NumPasses = n
				i++
			}
		case arg == "-x3":
			opts.cfg.Level = zabbrev.LevelMaximum
			if n, ok := peekInt(args, i+1); ok {
				opts.cfg.NumPasses = n
				i++
				if n2, ok := peekInt(args, i+1); ok {
					opts.cfg.NumDeepPasses = n2
					i++
				}
			}
		case arg == "-b":
			opts.cfg.ThrowBackLowScorers = true
		case arg == "-o":
			i++
			if i >= len(args) {
				return nil, errors.New("-o requires an argument")
			}
			opts.dialect = args[i]
		case arg == "--onlyrefactor":
			opts.cfg.OnlyRefactor = true
		case arg == "-i":
			opts.forceInform6 = true
		case arg == "--infodump":
			i++
			if i >= len(args) {
				return nil, errors.New("--infodump requires a file argument")
			}
			opts.infodump = args[i]
		case arg == "--txd":
			i++
			if i >= len(args) {
				return nil, errors.New("--txd requires a file argument")
			}
			opts.txd = args[i]
		case arg == "--debug":
			opts.cfg.Trace = true
		case len(arg) > 0 && arg[0] == '-':
			return nil, fmt.Errorf("unrecognized option %q", arg)
		default:
			opts.path = arg
		}
	}

	return opts, nil
}

func isVersionFlag(arg string) bool {
	if len(arg) != 3 || arg[0] != '-' || arg[1] != 'v' {
		return false
	}
	v := arg[2]
	return v >= '1' && v <= '8'
}

func nextInt(args []string, i int, flag string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s requires an integer argument", flag)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s: not a valid integer: %s", flag, args[i])
	}
	return n, nil
}

// peekInt reports whether args[i] looks like a bare integer (used for
// -x2/-x3's optional trailing numeric arguments, which have no leading
// flag of their own).
func peekInt(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (o *options) overrideAlphabet(flag, value string) {
	// Option errors (wrong-length alphabet argument) warn and fall back
	// to defaults rather than aborting the run; the actual Set call
	// happens in buildAlphabetOverride, called from run(), which prints
	// the warning to stderr.
	switch flag {
	case "-a0":
		o.a0 = value
	case "-a1":
		o.a1 = value
	case "-a2":
		o.a2 = value
	}
}

func run(opts *options) error {
	var corpus *zabbrev.Corpus
	var warnings []zabbrev.Warning
	var err error
	readInform6 := false

	switch {
	case opts.infodump != "" && opts.txd != "":
		corpus, warnings, err = adapter.ReadInfodumpTXD(opts.infodump, opts.txd, opts.charset)
	case opts.forceInform6 || looksLikeInform6(opts.path):
		readInform6 = true
		data, rerr := os.ReadFile(opts.path)
		if rerr != nil {
			return rerr
		}
		corpus, warnings, err = adapter.ReadInform6(data, opts.charset)
	default:
		corpus, warnings, err = adapter.ReadZAPDir(opts.path, opts.charset)
	}
	if err != nil {
		return err
	}

	// An explicit -vN overrides the version the reader detected;
	// otherwise the detected version is the one the run targets.
	if opts.versionSet {
		corpus.ZVersion = opts.cfg.ZVersion
	} else {
		opts.cfg.ZVersion = corpus.ZVersion
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Message)
	}

	if opts.a0 != "" || opts.a1 != "" || opts.a2 != "" {
		opts.cfg.Alphabet = buildAlphabetOverride(opts)
	}

	result, err := zabbrev.Run(corpus, opts.cfg)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Message)
	}
	if opts.cfg.Trace {
		for _, line := range result.Trace {
			fmt.Fprintln(os.Stderr, "trace:", line)
		}
	}

	if opts.cfg.OnlyRefactor {
		for _, lp := range result.LongDuplicates {
			fmt.Printf("%q\tfreq=%d\tcost=%d\n", lp.Key, lp.Freq, lp.Cost)
		}
		return nil
	}

	fallback := adapter.DialectZAP
	if readInform6 {
		fallback = adapter.DialectInform6
	}
	writeWarnings, err := adapter.Write(os.Stdout, adapter.ResolveDialect(opts.dialect), fallback, result.Abbreviations)
	for _, w := range writeWarnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Message)
	}
	return err
}

// buildAlphabetOverride applies -a0/-a1/-a2 on top of the default tables.
// Per §7, a wrong-length argument is an option error: warn to stderr and
// fall back to the default table for that slot rather than aborting.
func buildAlphabetOverride(opts *options) *zabbrev.Alphabet {
	alphabet := zabbrev.DefaultAlphabet()
	apply := func(flag, value string, set func([]byte) error) {
		if value == "" {
			return
		}
		if err := set([]byte(value)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v, using default\n", flag, err)
		}
	}
	apply("-a0", opts.a0, alphabet.SetA0)
	apply("-a1", opts.a1, alphabet.SetA1)
	apply("-a2", opts.a2, alphabet.SetA2)
	return alphabet
}

func looksLikeInform6(path string) bool {
	return len(path) >= 4 && path[len(path)-4:] == ".txt"
}
