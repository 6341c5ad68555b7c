package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"curvelab/config"
	"curvelab/curve"
	"curvelab/debug"
	"curvelab/midi"
	"curvelab/script"
	"curvelab/theme"
	"curvelab/tui"
)

var (
	paletteFile     string
	debugFlag       bool
	editDurationSec int
	genDurationSec  int
	seedFlag        int64
	outputFile      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "curvelab [file]",
	Short: "Interactive action-curve editor",
	Long: `curvelab is a terminal editor for timed position curves
(.funscript-style JSON documents).

Examples:
  curvelab clip.funscript
  curvelab analyze clip.funscript
  curvelab generate -o warmup.funscript --duration 180
  curvelab saves clip`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print movement statistics for a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic script",
	RunE:  runGenerate,
}

var (
	restoreFile string
	deleteFile  string
	restoreOut  string
)

var savesCmd = &cobra.Command{
	Use:   "saves [name]",
	Short: "List, restore or delete library snapshots",
	Long: `Without arguments, lists the documents in the snapshot library.
With a name, lists that document's snapshots; --restore and --delete
operate on a single snapshot file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSaves,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&paletteFile, "palette", "", "GIMP .gpl palette file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to ~/.config/curvelab/debug.log")
	rootCmd.Flags().IntVar(&editDurationSec, "duration", 60, "media length in seconds for new documents")

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "generated.funscript", "output file path")
	generateCmd.Flags().IntVar(&genDurationSec, "duration", 180, "length of the generated script in seconds")
	generateCmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed (0 = time-based)")

	savesCmd.Flags().StringVar(&restoreFile, "restore", "", "snapshot filename to restore")
	savesCmd.Flags().StringVar(&deleteFile, "delete", "", "snapshot filename to delete")
	savesCmd.Flags().StringVarP(&restoreOut, "output", "o", "", "restored script path (default <name>.funscript)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(savesCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if debugFlag {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if paletteFile == "" {
		paletteFile = cfg.UI.Palette
	}
	th := theme.New(theme.LoadGPLOrDefault(paletteFile))

	doc := script.New()
	path := ""
	if len(args) == 1 {
		path = args[0]
		s, err := script.Load(path)
		switch {
		case err == nil:
			doc = s
		case os.IsNotExist(rootCause(err)):
			// New document at this path
		default:
			return err
		}
	}

	totalMs := editDurationSec * 1000
	if doc.Metadata.DurationMs > totalMs {
		totalMs = doc.Metadata.DurationMs
	}
	if d := doc.Actions.Duration(); d > totalMs {
		totalMs = d
	}

	ed := curve.NewEditor(doc.Actions, totalMs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dm := midi.NewDeviceManager(cfg.AutoConnectControllers())
	go dm.Run(ctx)
	go midi.Bind(ctx, dm, ed)

	m := tui.NewModel(ed, th, cfg, doc, path, dm)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := script.Load(args[0])
	if err != nil {
		return err
	}
	rep := curve.Analyze(s.Actions)
	fmt.Println(rep.String())
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	seed := seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := curve.NewGenerator(seed)
	c := g.Generate(genDurationSec * 1000)

	doc := script.New()
	doc.Actions = c
	doc.Metadata.DurationMs = genDurationSec * 1000

	if err := script.Save(outputFile, doc); err != nil {
		return err
	}
	fmt.Printf("Wrote %d actions to %s\n", len(c), outputFile)
	return nil
}

func runSaves(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names, err := script.ListDocuments()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("library is empty")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	name := args[0]

	switch {
	case deleteFile != "":
		if err := script.DeleteSave(name, deleteFile); err != nil {
			return err
		}
		fmt.Printf("Deleted %s/%s\n", name, deleteFile)
		return nil

	case restoreFile != "":
		s, err := script.LoadSave(name, restoreFile)
		if err != nil {
			return err
		}
		out := restoreOut
		if out == "" {
			out = name + ".funscript"
		}
		if err := script.Save(out, s); err != nil {
			return err
		}
		fmt.Printf("Restored %s/%s -> %s (%d actions)\n", name, restoreFile, out, len(s.Actions))
		return nil
	}

	saves, err := script.ListSaves(name)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("no snapshots")
		return nil
	}
	for _, s := range saves {
		label := s.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("%s  %-20s %s\n", s.Timestamp.Format("2006-01-02 15:04:05"), label, s.Filename)
	}
	return nil
}

// rootCause unwraps pkg/errors chains so os.IsNotExist sees the syscall
// error underneath.
func rootCause(err error) error {
	type causer interface{ Cause() error }
	for err != nil {
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return err
}
