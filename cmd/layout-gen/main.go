package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/gridpath/config"
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/maze"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/store"
)

var (
	configPath  = flag.String("config", "gridpath.toml", "Path to TOML config file")
	storePath   = flag.String("store", "", "Layout database (overrides config)")
	sizeFlag    = flag.Int("size", 0, "Board side length including border (default from config)")
	braidFlag   = flag.Float64("braid", 0.2, "Braiding factor [0.0 - 1.0]")
	densityFlag = flag.Float64("density", 1.0, "Fraction of maze walls kept [0.0 - 1.0]")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = random)")
	nameFlag    = flag.String("name", "", "Save the layout under this name")
	listFlag    = flag.Bool("list", false, "List stored layouts and exit")
	interactive = flag.Bool("i", false, "Prompt for parameters in a loop")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *sizeFlag == 0 {
		*sizeFlag = cfg.Grid.Size
	}

	if *listFlag {
		if err := listLayouts(cfg.Store.Path, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "List: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *interactive {
		runInteractive(cfg, bufio.NewReader(os.Stdin))
		return
	}

	gen := maze.Config{
		Size:      *sizeFlag,
		Braiding:  clamp01(*braidFlag),
		Density:   clamp01(*densityFlag),
		Seed:      *seedFlag,
		Endpoints: true,
	}
	l := generate(gen, os.Stdout)

	if *nameFlag != "" {
		if err := saveLayout(cfg.Store.Path, *nameFlag, l); err != nil {
			fmt.Fprintf(os.Stderr, "Save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved as %q in %s\n", *nameFlag, cfg.Store.Path)
	}
}

func runInteractive(cfg config.Config, reader *bufio.Reader) {
	for {
		fmt.Println("\n=== GRIDPATH LAYOUT GENERATOR ===")

		size := getInt(reader, fmt.Sprintf("Size (default %d): ", cfg.Grid.Size), cfg.Grid.Size)
		braid := getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.2): ", 0.2)
		density := getFloat(reader, "Wall Density [0.0 - 1.0] (default 1.0): ", 1.0)

		l := generate(maze.Config{
			Size:      size,
			Braiding:  braid,
			Density:   density,
			Endpoints: true,
		}, os.Stdout)

		fmt.Print("\nSave as (empty to skip): ")
		name, _ := reader.ReadString('\n')
		if name = strings.TrimSpace(name); name != "" {
			if err := saveLayout(cfg.Store.Path, name, l); err != nil {
				fmt.Printf("Save failed: %v\n", err)
			} else {
				fmt.Printf("Saved as %q\n", name)
			}
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// generate builds a layout, solves it and prints both
func generate(cfg maze.Config, w io.Writer) grid.Layout {
	fmt.Fprintln(w, "\nGenerating...")
	startT := time.Now()
	l := maze.Generate(cfg)
	dur := time.Since(startT)

	fmt.Fprintf(w, "Done in %v\n", dur)
	fmt.Fprintf(w, "Grid Dimensions: %dx%d, %d obstacles\n", l.Size, l.Size, len(l.Obstacles))

	var path []core.Cell
	if g, err := grid.FromLayout(l); err == nil {
		res := navigation.Search(g, navigation.Rules{})
		if res.Found {
			path = res.Path
			fmt.Fprintf(w, "Solution Path Length: %d steps, cost %d\n", len(res.Path), res.Cost)
		} else {
			fmt.Fprintf(w, "Status: Unsolvable (%s)\n", res.Failure)
		}
	}

	draw(w, l, path)
	return l
}

func draw(w io.Writer, l grid.Layout, path []core.Cell) {
	blocked := make(map[core.Cell]bool, len(l.Obstacles))
	for _, c := range l.Obstacles {
		blocked[c] = true
	}
	onPath := make(map[core.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var sb strings.Builder
	for y := 0; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			c := core.Cell{X: x, Y: y}
			switch {
			case l.Start != nil && c == *l.Start:
				sb.WriteRune('S')
			case l.Goal != nil && c == *l.Goal:
				sb.WriteRune('G')
			case x == 0 || y == 0 || x == l.Size-1 || y == l.Size-1 || blocked[c]:
				sb.WriteRune('█')
			case onPath[c]:
				sb.WriteRune('•')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(w, sb.String())
}

func saveLayout(path, name string, l grid.Layout) error {
	st, err := store.Open(path, zerolog.Nop())
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(context.Background(), name, l)
}

func listLayouts(path string, w io.Writer) error {
	st, err := store.Open(path, zerolog.Nop())
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.List(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tOBSTACLES\tCREATED")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Name, s.Size, s.Obstacles, s.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
