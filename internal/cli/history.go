package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/scene"
)

func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, undo and redo committed revisions of a document",
		Long: `Every gesture command commits the resulting document to a journal kept
per document file. The backend is configured under [history]; the memory
backend is stored in files by the CLI so that it survives between runs.`,
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyStepCommand("undo", "Restore the previous revision", (*history.Journal).Undo))
	cmd.AddCommand(c.historyStepCommand("redo", "Restore the next revision", (*history.Journal).Redo))

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <document.json>",
		Short: "List revisions; the current one is marked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := c.openJournal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer j.Close()

			revs, cur, err := j.Revisions(cmd.Context())
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				printInfo("No history for %s", args[0])
				return nil
			}
			for i, rev := range revs {
				printRevision(rev, i == cur)
			}
			return nil
		},
	}
}

type stepFunc func(*history.Journal, context.Context) (scene.Document, error)

func (c *CLI) historyStepCommand(op, short string, step stepFunc) *cobra.Command {
	return &cobra.Command{
		Use:   op + " <document.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := c.runHistoryStep(cmd.Context(), args[0], step)
			if err != nil {
				return err
			}
			printSuccess("Restored revision %d (%s)", rev.Seq, labelOr(rev.Label))
			printFile(args[0])
			return nil
		},
	}
}

// runHistoryStep syncs the journal with the file, steps it and writes the
// restored document back to path.
func (c *CLI) runHistoryStep(ctx context.Context, path string, step stepFunc) (history.Revision, error) {
	_, sc, err := c.loadDocument(path)
	if err != nil {
		return history.Revision{}, err
	}
	j, err := c.openJournal(ctx, path)
	if err != nil {
		return history.Revision{}, err
	}
	defer j.Close()
	if err := syncJournal(ctx, j, sc.Document()); err != nil {
		return history.Revision{}, err
	}

	doc, err := step(j, ctx)
	if err != nil {
		return history.Revision{}, err
	}
	restored, err := scene.FromDocument(doc)
	if err != nil {
		return history.Revision{}, err
	}
	if err := saveDocument(restored, path); err != nil {
		return history.Revision{}, err
	}
	rev, _, err := j.Current(ctx)
	return rev, err
}

func printRevision(rev history.Revision, current bool) {
	marker := "  "
	if current {
		marker = StyleHighlight.Render(iconArrow) + " "
	}
	fmt.Printf("%s%s  %s  %-8s %s\n",
		marker,
		StyleNumber.Render(fmt.Sprintf("%4d", rev.Seq)),
		StyleDim.Render(rev.Time.Local().Format("2006-01-02 15:04:05")),
		labelOr(rev.Label),
		StyleDim.Render(fmt.Sprintf("%d shapes", len(rev.Document.Shapes))))
}

func labelOr(label string) string {
	if label == "" {
		return "commit"
	}
	return label
}
