// bdfe converts BDF bitmap fonts to C array initialisers, one packed glyph
// cell per entry, ready to be pasted into a display driver:
//
//	bdfe -H -g -s 32-126 6x12.bdf > font6x12.h
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/mhbvr/bdfe/internal/config"
	"github.com/mhbvr/bdfe/internal/convert"
)

var opts struct {
	Config   string `short:"c" long:"config" description:"yaml file with default options"`
	Out      string `short:"o" long:"out" description:"output file, '-' for stdout"`
	Header   bool   `short:"H" long:"header" description:"print the font header comments"`
	Verbose  bool   `short:"v" long:"verbose" description:"echo glyph source lines as comments"`
	Mute     bool   `short:"m" long:"mute" description:"decode and check the font, print nothing"`
	Compact  bool   `short:"g" long:"compact" description:"one glyph per line"`
	Range    string `short:"s" long:"range" description:"code point range MIN-MAX"`
	Ascender uint   `short:"a" long:"ascender" description:"ascender echoed in the header"`
	Strict   bool   `long:"strict" description:"fail on the first bad glyph"`
	Preview  string `long:"preview" description:"also write a BMP sheet of the glyphs"`
	Debug    bool   `short:"d" long:"debug" description:"debug logging"`

	Args struct {
		Font string `positional-arg-name:"font.bdf"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := config.NewLogger(os.Stderr, opts.Debug)
	if err := run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	o, err := options()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if o.Out != "-" && o.Out != "" {
		f, err := os.Create(o.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	sink := convert.NewSink(w, o)
	st, err := convert.File(opts.Args.Font, o, log, sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if o.Out != "-" && o.Out != "" {
			os.Remove(o.Out)
		}
		return err
	}

	log.WithFields(logrus.Fields{
		"filtered": st.Filtered,
		"skipped":  st.Skipped,
		"warnings": st.Warnings,
	}).Debugf("%d of %d glyphs written", st.Emitted, st.Glyphs)
	return nil
}

// options merges the config file with the command line. Flags can only
// switch boolean options on.
func options() (config.Options, error) {
	o := config.Default()
	if opts.Config != "" {
		var err error
		if o, err = config.Load(opts.Config); err != nil {
			return o, err
		}
	}

	o.Header = o.Header || opts.Header
	o.Verbose = o.Verbose || opts.Verbose
	o.Mute = o.Mute || opts.Mute
	o.Compact = o.Compact || opts.Compact
	o.Strict = o.Strict || opts.Strict
	if opts.Range != "" {
		r, err := config.ParseRange(opts.Range)
		if err != nil {
			return o, fmt.Errorf("-s: %w", err)
		}
		o.Range = r
	}
	if opts.Ascender != 0 {
		o.Ascender = opts.Ascender
	}
	if opts.Preview != "" {
		o.Preview = opts.Preview
	}
	if opts.Out != "" {
		o.Out = opts.Out
	}
	return o, nil
}
