// jsontape reads whole JSON documents and reports tape statistics for each,
// or fails loudly on the first invalid one. It exists to exercise the
// tape package end to end; production use is expected to embed the package
// directly rather than shell out to this binary.
//
// Copyright 2021 Michael J. Fromberger.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	tape "github.com/creachadair/jsontape"
	"github.com/creachadair/jsontape/internal/structural"
)

var (
	ndjson   = flag.Bool("ndjson", false, "treat input as newline-delimited JSON")
	maxDepth = flag.Int("max-depth", 0, "maximum nesting depth (0 selects the default)")
)

func main() {
	log.SetPrefix("jsontape: ")
	log.SetFlags(0)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := processFile(arg); err != nil {
			log.Fatal(err)
		}
	}
}

func processFile(name string) error {
	r, err := openInput(name)
	if err != nil {
		return errors.Wrapf(err, "opening %q", name)
	}
	defer r.Close()

	input, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return errors.Wrapf(err, "reading %q", name)
	}

	opts := tape.Options{MaxDepth: *maxDepth}
	indices := structural.Find(input)
	buf := tape.NewBuffers(len(input))

	if *ndjson {
		return processStream(name, input, indices, opts, buf)
	}
	if _, err := tape.Parse(input, indices, 0, buf, opts); err != nil {
		return errors.Wrapf(locateErr(err, input), "parsing %q", name)
	}
	report(name, 0, buf)
	return nil
}

func processStream(name string, input []byte, indices []uint32, opts tape.Options, buf *tape.Buffers) error {
	s := tape.NewStream(input, indices, opts)
	for n := 0; ; n++ {
		if err := s.Next(buf); err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(locateErr(err, input), "parsing document %d of %q", n, name)
		}
		report(name, n, buf)
	}
}

// locateErr reports a *tape.Error's line and column alongside its offset,
// rather than the offset alone.
func locateErr(err error, input []byte) error {
	tErr, ok := err.(*tape.Error)
	if !ok {
		return err
	}
	loc := tErr.Location(input)
	return fmt.Errorf("%w (line %d, column %d)", tErr, loc.Line, loc.Column)
}

func report(name string, docIndex int, buf *tape.Buffers) {
	fmt.Printf("%s[%d]: %s tape words, %s string bytes\n",
		name, docIndex,
		humanize.Comma(int64(len(buf.Tape))),
		humanize.Comma(int64(len(buf.Strings))))
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
