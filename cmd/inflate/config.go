package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/inflate"
)

const (
	EnvVarPrefix  = "INFLATE"
	DefaultSuffix = ".zz"
)

// VERSION gets set during build
var VERSION = "0.0.0"

type CLI struct {
	Files   []string `kong:"arg,optional,help='Input files or doublestar globs (reads stdin when empty)'"`
	Zlib    bool     `kong:"help='Input is zlib-wrapped (RFC 1950)',short='z'"`
	Lenient bool     `kong:"help='Ignore zlib checksum mismatch'"`
	Digest  bool     `kong:"help='Print xxhash64 digest and sizes instead of the data',short='s'"`
	Output  string   `kong:"help='Write each input to a file in this directory instead of stdout',short='o'"`
	Suffix  string   `kong:"help='Suffix stripped from input names when writing to --output',default='${suffix}'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`
}

func parseCLI(args []string, options ...kong.Option) (*CLI, error) {
	cli := &CLI{}

	options = append([]kong.Option{
		kong.Name("inflate"),
		kong.Description("Streaming DEFLATE / zlib decompressor"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
			"suffix":  DefaultSuffix,
		},
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return nil, errors.Wrap(err, "error creating CLI parser")
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	if err := validateCLI(cli); err != nil {
		return nil, errors.Wrap(err, "error validating args")
	}

	return cli, nil
}

func validateCLI(cli *CLI) error {
	if cli == nil {
		return errors.New("cli args cannot be nil")
	}

	if cli.Lenient && !cli.Zlib {
		return errors.New("--lenient only applies to zlib input (--zlib)")
	}

	if cli.Output != "" {
		if cli.Digest {
			return errors.New("--output and --digest are mutually exclusive")
		}

		if len(cli.Files) == 0 {
			return errors.New("--output requires input files")
		}

		fi, err := os.Stat(cli.Output)
		if err != nil {
			return errors.Wrap(err, "unable to stat output directory")
		}

		if !fi.IsDir() {
			return errors.Errorf("output '%s' is not a directory", cli.Output)
		}
	}

	return nil
}

func (cli *CLI) decodeOptions() *inflate.Options {
	opts := inflate.DefaultOptions()
	if cli.Zlib {
		opts = inflate.ZlibOptions()
		opts.VerifyChecksum = !cli.Lenient
	}
	opts.Logger = logrus.StandardLogger()

	return opts
}
