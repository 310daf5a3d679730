package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type result struct {
	scenario   string
	framework  string
	iterations int64
	nsPerOp    float64
	bytesPerOp int64
	allocsOp   int64
}

func main() {
	benchDir := ".."
	if len(os.Args) > 1 {
		benchDir = os.Args[1]
	}

	fmt.Println("Running benchmarks...")

	cmd := exec.Command("go", "test", "-bench=.", "-benchmem", "-count=3", "-benchtime=100ms")
	cmd.Dir = benchDir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "benchmark failed: %s\n", string(exitErr.Stderr))
		} else {
			fmt.Fprintf(os.Stderr, "benchmark failed: %v\n", err)
		}
		os.Exit(1)
	}

	results := parse(output)
	for _, scenario := range scenarios(results) {
		render(scenario, results[scenario])
	}
}

var benchLine = regexp.MustCompile(`^Benchmark(\w+)-\d+\s+(\d+)\s+([\d.]+) ns/op\s+(\d+) B/op\s+(\d+) allocs/op`)

// parse averages the repeated runs of each benchmark and groups them by
// scenario (the benchmark name up to the trailing framework segment).
func parse(output []byte) map[string][]result {
	runs := make(map[string][]result)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		m := benchLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		name := m[1]
		idx := strings.LastIndex(name, "_")
		if idx == -1 {
			continue
		}

		iterations, _ := strconv.ParseInt(m[2], 10, 64)
		nsPerOp, _ := strconv.ParseFloat(m[3], 64)
		bytesPerOp, _ := strconv.ParseInt(m[4], 10, 64)
		allocsOp, _ := strconv.ParseInt(m[5], 10, 64)

		runs[name] = append(runs[name], result{
			scenario:   strings.ReplaceAll(name[:idx], "_", " "),
			framework:  name[idx+1:],
			iterations: iterations,
			nsPerOp:    nsPerOp,
			bytesPerOp: bytesPerOp,
			allocsOp:   allocsOp,
		})
	}

	grouped := make(map[string][]result)
	for _, rs := range runs {
		avg := rs[0]
		var ns float64
		var bytesOp, allocs int64
		for _, r := range rs {
			ns += r.nsPerOp
			bytesOp += r.bytesPerOp
			allocs += r.allocsOp
		}
		n := float64(len(rs))
		avg.nsPerOp = ns / n
		avg.bytesPerOp = int64(float64(bytesOp) / n)
		avg.allocsOp = int64(float64(allocs) / n)
		grouped[avg.scenario] = append(grouped[avg.scenario], avg)
	}

	for _, rs := range grouped {
		sort.Slice(rs, func(i, j int) bool { return rs[i].nsPerOp < rs[j].nsPerOp })
	}
	return grouped
}

func scenarios(grouped map[string][]result) []string {
	out := make([]string, 0, len(grouped))
	for s := range grouped {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func render(scenario string, results []result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(scenario)
	t.AppendHeader(table.Row{"Framework", "ns/op", "B/op", "allocs/op", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	fastest := results[0].nsPerOp
	for i, r := range results {
		note := "fastest"
		if i > 0 && fastest > 0 {
			note = fmt.Sprintf("%.1fx slower", r.nsPerOp/fastest)
		}
		t.AppendRow(table.Row{
			r.framework,
			fmt.Sprintf("%.0f", r.nsPerOp),
			r.bytesPerOp,
			r.allocsOp,
			note,
		})
	}

	t.Render()
	fmt.Println()
}
