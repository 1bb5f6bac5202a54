package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/strictenc/strictenc"
)

func main() {
	var (
		flagN       string
		flagText    string
		flagJSON    bool
		flagVersion bool
	)

	flag.StringVar(&flagN, "n", "", "Integer value to encode")
	flag.StringVar(&flagText, "text", "", "Encode each character of this text instead of -n")
	flag.BoolVar(&flagJSON, "json", false, "Emit JSON instead of plain numbers")
	flag.BoolVar(&flagVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <instructions>\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nInstructions are semicolon-separated, e.g. '(n + 111) % 256;n ^ 217'")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flagVersion {
		fmt.Println(strictenc.Version)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}
	instructions := strings.TrimSpace(args[0])

	switch {
	case flagText != "":
		rows, err := strictenc.EncodeText(flagText, instructions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printRows(rows, flagJSON)
	case flagN != "":
		results, err := strictenc.EncodeValue(flagN, instructions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printRow(results, flagJSON)
	default:
		fmt.Fprintln(os.Stderr, "One of -n or -text is required")
		flag.Usage()
		os.Exit(2)
	}
}

func printRow(results []int, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(results)
		return
	}
	out := make([]string, len(results))
	for i, v := range results {
		out[i] = fmt.Sprintf("%d", v)
	}
	fmt.Println(strings.Join(out, " "))
}

func printRows(rows [][]int, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(rows)
		return
	}
	for _, row := range rows {
		printRow(row, false)
	}
}
