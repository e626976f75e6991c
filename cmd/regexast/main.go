package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"regexast/ast"
	"regexast/parser"
)

func main() {
	file := flag.String("file", "", "read the pattern from a file")
	remove := flag.String("remove", "", "dotted child index path of a node to remove, e.g. 0.1")
	nocheck := flag.Bool("nocheck", false, "skip the regex engine syntax check")
	dot := flag.Bool("dot", false, "print a Graphviz digraph instead of the indented dump")
	flag.Parse()

	pattern, err := readPattern(*file, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	var opts []parser.Option
	if *nocheck {
		opts = append(opts, parser.WithoutValidation())
	}
	root, err := parser.Parse(pattern, opts...)
	if err != nil {
		log.Fatal(err)
	}
	show := func(n ast.Node) {
		if *dot {
			ast.ExportDOT(os.Stdout, n)
			return
		}
		fmt.Print(ast.Dump(n))
	}
	show(root)

	if *remove == "" {
		return
	}
	path, err := parsePath(*remove)
	if err != nil {
		log.Fatal(err)
	}
	target, ok := ast.At(root, path...)
	if !ok || target.Parent() == nil {
		log.Fatalf("no removable node at %s", *remove)
	}
	edited := target.Parent().RemoveNode(target, true)
	fmt.Printf("\nafter removing %s %q:\n", ast.Kind(target), target.String())
	show(edited)
}

func readPattern(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	if len(args) != 1 {
		log.Fatalf("usage: %s [-nocheck] [-dot] [-remove path] <pattern> | -file <pattern file>", os.Args[0])
	}
	return args[0], nil
}

func parsePath(s string) ([]int, error) {
	var path []int
	for _, part := range strings.Split(s, ".") {
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad path %q: %w", s, err)
		}
		path = append(path, i)
	}
	return path, nil
}
