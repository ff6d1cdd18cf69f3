package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lifesim/internal/pattern"
)

func init() {
	lib := &cobra.Command{
		Use:   "library",
		Short: "Manage saved pattern documents",
	}

	save := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a pattern document (file or stdin) to the library",
		Args:  cobra.MaximumNArgs(1),
		Run:   runLibrarySave,
	}
	save.Flags().String("name", "", "Override the document name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved patterns, newest first",
		Run:   runLibraryList,
	}
	list.Flags().IntP("limit", "l", 50, "Maximum entries to list")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved pattern document",
		Args:  cobra.ExactArgs(1),
		Run:   runLibraryShow,
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved pattern",
		Args:  cobra.ExactArgs(1),
		Run:   runLibraryRm,
	}

	lib.AddCommand(save, list, show, rm)
	RootCmd.AddCommand(lib)
}

func runLibrarySave(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	data, err := readInput(path)
	if err != nil {
		exitErr("read pattern", err)
	}
	doc, err := pattern.Parse(data)
	if err != nil {
		exitErr("parse pattern", err)
	}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		doc.Name = name
	}

	l, err := openLibrary()
	if err != nil {
		exitErr("open library", err)
	}
	defer l.Close()

	entry, err := l.Save(cmd.Context(), doc)
	if err != nil {
		exitErr("save", err)
	}
	entry.Document = nil
	printJSON(entry)
}

func runLibraryList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	l, err := openLibrary()
	if err != nil {
		exitErr("open library", err)
	}
	defer l.Close()

	entries, err := l.List(cmd.Context(), limit)
	if err != nil {
		exitErr("list", err)
	}

	if textOutput() {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tGEN\tCELLS\tCREATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%s\n",
				e.ID, e.Name, e.Rows, e.Cols, e.Generation, e.Population, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return
	}
	printJSON(entries)
}

func runLibraryShow(cmd *cobra.Command, args []string) {
	l, err := openLibrary()
	if err != nil {
		exitErr("open library", err)
	}
	defer l.Close()

	entry, err := l.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}
	printJSON(entry.Document)
}

func runLibraryRm(cmd *cobra.Command, args []string) {
	l, err := openLibrary()
	if err != nil {
		exitErr("open library", err)
	}
	defer l.Close()

	if err := l.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}
