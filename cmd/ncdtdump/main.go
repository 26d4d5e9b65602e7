// Command ncdtdump reads MOV/MP4 files and prints their Nikon NCDT metadata.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tetsuo/ncdt"
	"github.com/tetsuo/ncdt/internal/config"
	"github.com/tetsuo/ncdt/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ncdtdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	format := fs.String("format", "", "output format: text, json or yaml")
	maxDepth := fs.Int("max-depth", 0, "maximum box nesting depth")
	skipUnknown := fs.Bool("skip-unknown-tlv", false, "stop at unknown NCTG record types instead of failing")
	tree := fs.Bool("tree", false, "also list the top-level boxes")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: ncdtdump [flags] <file.mov>...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "ncdtdump: %v\n", err)
			return 1
		}
	}
	if *format != "" {
		f, err := config.ParseFormat(*format)
		if err != nil {
			fmt.Fprintf(stderr, "ncdtdump: %v\n", err)
			return 2
		}
		cfg.Format = f
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *skipUnknown {
		cfg.SkipUnknownTLV = true
	}

	log := logging.New(stderr, "ncdtdump", cfg)
	opts := append(cfg.DecoderOptions(), ncdt.WithLogger(log))

	status := 0
	for _, path := range fs.Args() {
		if err := dump(stdout, path, cfg.Format, *tree, opts); err != nil {
			log.Error().Err(err).Str("file", path).Msg("dump failed")
			status = 1
		}
	}
	return status
}

func dump(w io.Writer, path, format string, tree bool, opts []ncdt.Option) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if tree {
		if err := printTree(w, f); err != nil {
			return err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	box, err := ncdt.FindNcdt(f, opts...)
	if errors.Is(err, ncdt.ErrNotFound) {
		fmt.Fprintf(w, "%s: no NCDT box\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	switch format {
	case config.FormatJSON:
		s, err := box.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	case config.FormatYAML:
		s, err := box.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(w, s)
	default:
		fmt.Fprintf(w, "%s: %s\n", path, box)
	}
	return nil
}

// printTree lists the top-level boxes of r.
func printTree(w io.Writer, r io.ReadSeeker) error {
	sc := ncdt.NewScanner(r)
	for sc.Next() {
		e := sc.Entry()
		fmt.Fprintf(w, "[%s] offset=%d size=%d\n", e.Type, e.Offset, e.Size)
	}
	return sc.Err()
}
