// Command classify walks a directory and classifies every regular
// file it finds using a pool of external file-type-identification
// workers. It is a demo driver, not part of the library: apart from the
// WalkPaths helper the library never reads directories, and it never
// prints anything.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/orensam/classify"
)

type cliFlags struct {
	dir       string
	workers   int
	program   string
	recursive bool
	suffix    string
}

func parseFlags() cliFlags {
	var f cliFlags

	flag.StringVar(&f.dir, "dir", ".", "directory to classify")
	flag.IntVar(&f.workers, "workers", 4, "number of worker processes")
	flag.StringVar(&f.program, "program", "/usr/bin/file", "external classification program")
	flag.BoolVar(&f.recursive, "recursive", false, "descend into subdirectories")
	flag.StringVar(&f.suffix, "suffix", "", "only classify files with this suffix")
	flag.Parse()

	return f
}

func main() {
	f := parseFlags()

	var walkOpts []classify.WalkOption
	if f.recursive {
		walkOpts = append(walkOpts, classify.WithWalkRecursive())
	}

	if f.suffix != "" {
		walkOpts = append(walkOpts, classify.WithWalkSuffix(f.suffix))
	}

	paths, err := classify.WalkPaths(f.dir, walkOpts...)
	if err != nil {
		log.Fatalf("walk %s: %v", f.dir, err)
	}

	if len(paths) == 0 {
		fmt.Println("no files found")

		return
	}

	pool, err := classify.NewPool(f.workers, classify.WithProgram(f.program, "-n", "-f-"))
	if err != nil {
		log.Fatalf("new pool: %v", err)
	}

	defer func() {
		if err := pool.Close(); err != nil {
			log.Printf("close pool: %v", err)
		}
	}()

	types, err := pool.FindTypes(paths)
	if err != nil {
		log.Fatalf("find types: %v", err)
	}

	for i, p := range paths {
		fmt.Printf("%s: %s\n", p, types[i])
	}

	stats := pool.Stats()

	fmt.Fprintf(os.Stderr, "classified %d files in %s\n", stats.Files, stats.Elapsed)
}
