package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/inflate"
)

func main() {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	cli, err := parseCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ", err)
		os.Exit(1)
	}

	if cli.Debug {
		logrus.Info("debug mode enabled")
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(cli, os.Stdin, os.Stdout); err != nil {
		logrus.Errorf("unable to decompress: %s", err)
		os.Exit(1)
	}
}

// result describes one decoded input.
type result struct {
	Name   string
	In     int64
	Out    int64
	Digest uint64
}

func run(cli *CLI, stdin io.Reader, stdout io.Writer) error {
	paths, err := expandInputs(cli.Files)
	if err != nil {
		return errors.Wrap(err, "error expanding inputs")
	}

	opts := cli.decodeOptions()

	if len(paths) == 0 {
		res, err := decodeStream("-", stdin, stdout, cli.Digest, opts)
		if err != nil {
			return errors.Wrap(err, "error decoding stdin")
		}

		return report(cli, stdout, res)
	}

	for _, path := range paths {
		res, err := decodeFile(cli, path, stdout, opts)
		if err != nil {
			return errors.Wrapf(err, "error decoding '%s'", path)
		}

		if err := report(cli, stdout, res); err != nil {
			return err
		}
	}

	return nil
}

// expandInputs resolves doublestar patterns ("**" included) into a de-duplicated path list in match order.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "bad pattern '%s'", pattern)
		}

		if len(matches) == 0 {
			return nil, errors.Errorf("no files match '%s'", pattern)
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	return paths, nil
}

func decodeFile(cli *CLI, path string, stdout io.Writer, opts *inflate.Options) (*result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open input")
	}
	defer f.Close()

	if cli.Output == "" {
		return decodeStream(path, f, stdout, cli.Digest, opts)
	}

	dst := outputPath(cli.Output, path, cli.Suffix)
	out, err := os.Create(dst)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create output")
	}

	res, err := decodeStream(path, f, out, false, opts)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "unable to close output")
	}

	return res, err
}

// outputPath strips suffix from the input base name; names without it get ".out".
func outputPath(dir, path, suffix string) string {
	base := filepath.Base(path)
	if suffix != "" && strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
		base = strings.TrimSuffix(base, suffix)
	} else {
		base += ".out"
	}

	return filepath.Join(dir, base)
}

func decodeStream(name string, r io.Reader, dst io.Writer, digestOnly bool, opts *inflate.Options) (*result, error) {
	zr := inflate.NewReader(r, opts)
	h := xxhash.New()

	var w io.Writer = h
	if !digestOnly {
		w = io.MultiWriter(dst, h)
	}

	n, err := io.Copy(w, zr)
	if err != nil {
		return nil, err
	}

	res := &result{
		Name:   name,
		In:     zr.TotalIn(),
		Out:    n,
		Digest: h.Sum64(),
	}

	logrus.WithFields(logrus.Fields{
		"file":   name,
		"in":     res.In,
		"out":    res.Out,
		"digest": fmt.Sprintf("%016x", res.Digest),
	}).Debug("decoded")

	return res, nil
}

func report(cli *CLI, stdout io.Writer, res *result) error {
	if !cli.Digest {
		return nil
	}

	if _, err := fmt.Fprintf(stdout, "%016x  %d  %d  %s\n", res.Digest, res.In, res.Out, res.Name); err != nil {
		return errors.Wrap(err, "unable to write digest")
	}

	return nil
}
