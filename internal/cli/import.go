package cli

import (
	"github.com/spf13/cobra"

	"lifesim/internal/pattern"
	"lifesim/internal/session"
	"lifesim/internal/sims/life"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Validate and load a pattern document",
		Long: "Load a pattern document (file or stdin) onto a board and report the result.\n" +
			"The board takes the document's grid size unless --rows/--cols are given;\n" +
			"cells outside the board are dropped.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().Int("rows", 0, "Board rows (default: document grid size)")
	cmd.Flags().Int("cols", 0, "Board columns (default: document grid size)")

	RootCmd.AddCommand(cmd)
}

type importReport struct {
	pattern.Result
	Error   string `json:"error,omitempty"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	Summary any    `json:"summary,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	data, err := readInput(path)
	if err != nil {
		exitErr("read pattern", err)
	}

	cfg := life.DefaultConfig()
	if cmd.Flags().Changed("rows") {
		cfg.Rows, _ = cmd.Flags().GetInt("rows")
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols, _ = cmd.Flags().GetInt("cols")
	}
	if doc, perr := pattern.Parse(data); perr == nil {
		cfg, err = fitDocument(cmd, cfg, doc)
	} else {
		err = checkDimensions(cfg.Rows, cfg.Cols)
	}
	if err != nil {
		exitErr("board", err)
	}

	s := session.New(cfg)
	res := s.Import(data)
	report := importReport{Result: res, Rows: s.Rows(), Cols: s.Cols()}
	if res.Success {
		report.Summary = s.Summary()
	} else if res.Err != nil {
		report.Error = res.Err.Error()
	}
	writeJSON(cmd.OutOrStdout(), report)
	if !res.Success {
		exitErr("import", res.Err)
	}
}
