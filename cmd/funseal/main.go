package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funseal/internal/manifest"
	"github.com/funvibe/funseal/internal/object"
)

var version = "0.1.0"

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleVersion() {
		return
	}
	if handleValidate() {
		return
	}
	if handleInspect() {
		return
	}

	printUsage(os.Stderr)
	os.Exit(1)
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "help" && os.Args[1] != "-help" && os.Args[1] != "--help" {
		return false
	}
	printUsage(os.Stdout)
	return true
}

func handleVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "version" && os.Args[1] != "-version" && os.Args[1] != "--version" {
		return false
	}
	fmt.Printf("funseal %s\n", version)
	return true
}

func handleValidate() bool {
	if len(os.Args) < 2 || os.Args[1] != "validate" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s validate <manifest>\n", os.Args[0])
		os.Exit(1)
	}

	path := os.Args[2]
	m, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Building the classes catches what schema checks cannot, like parent
	// orders with no consistent linearization.
	classes, err := manifest.Apply(m, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d classes, %d immutable types, %d proxied types\n",
		path, len(classes), len(m.Immutable), len(m.Proxies))
	return true
}

func handleInspect() bool {
	if len(os.Args) < 2 || os.Args[1] != "inspect" {
		return false
	}
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s inspect <manifest> <class>\n", os.Args[0])
		os.Exit(1)
	}

	path, name := os.Args[2], os.Args[3]
	m, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	classes, err := manifest.Apply(m, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}

	c, ok := classes[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: class %q is not declared\n", path, name)
		os.Exit(1)
	}

	printClass(os.Stdout, c)
	return true
}

func printClass(w io.Writer, c *object.Class) {
	header := c.Name
	if c.Sealed() {
		header += " (sealed)"
	}
	fmt.Fprintln(w, bold(header))

	chain, err := c.Linearization()
	if err != nil {
		fmt.Fprintf(w, "  ancestors: %v\n", err)
		return
	}
	names := make([]string, len(chain))
	for i, a := range chain {
		names[i] = a.Name
	}
	fmt.Fprintf(w, "  ancestors: %s\n", strings.Join(names, " -> "))

	fmt.Fprintln(w, "  methods:")
	for _, mname := range effectiveMethodNames(chain) {
		meth, defining, ok := c.FindMethod(mname)
		if !ok {
			continue
		}
		origin := ""
		if defining != c {
			origin = "  (from " + defining.Name + ")"
		}
		fmt.Fprintf(w, "    %-16s %s%s\n", mname, meth.Kind, origin)
	}
}

// effectiveMethodNames merges the tables of every class in the chain, so
// inherited methods show up next to the class's own.
func effectiveMethodNames(chain []*object.Class) []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range chain {
		for _, name := range a.MethodNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "funseal: manifest tooling for the immutability runtime")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-36s %s\n", "funseal validate <manifest>", "check a manifest and build its classes")
	fmt.Fprintf(w, "  %-36s %s\n", "funseal inspect <manifest> <class>", "print a class's ancestors and methods")
	fmt.Fprintf(w, "  %-36s %s\n", "funseal version", "print the version")
}

var (
	colorLevelOnce sync.Once
	colorLevelVal  int
)

// detectColorLevel probes the terminal once. 0 means no color.
func detectColorLevel() int {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return 0
	}

	// Not a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return 0
	}

	term := os.Getenv("TERM")
	if term == "dumb" {
		return 0
	}

	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return 16777216
	}

	if strings.Contains(term, "256color") {
		return 256
	}

	return 1
}

func getColorLevel() int {
	colorLevelOnce.Do(func() {
		colorLevelVal = detectColorLevel()
	})
	return colorLevelVal
}

func bold(s string) string {
	if getColorLevel() == 0 {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}
