package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lifesim/internal/sims/life"
)

func init() {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in patterns usable with --pattern",
		Run:   runPresets,
	}

	RootCmd.AddCommand(cmd)
}

type presetInfo struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells int    `json:"cells"`
}

func runPresets(cmd *cobra.Command, args []string) {
	var infos []presetInfo
	for _, name := range life.PresetNames() {
		p, _ := life.LookupPreset(name)
		rows, cols := p.Size()
		infos = append(infos, presetInfo{Name: name, Rows: rows, Cols: cols, Cells: len(p.Cells)})
	}

	if textOutput() {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tCELLS")
		for _, p := range infos {
			fmt.Fprintf(w, "%s\t%dx%d\t%d\n", p.Name, p.Rows, p.Cols, p.Cells)
		}
		w.Flush()
		return
	}
	printJSON(infos)
}
