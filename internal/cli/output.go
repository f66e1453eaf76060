package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/olekukonko/tablewriter"
)

// ConsolePresenter renders sync pipeline events as a per-image progress
// trace, in the style of the interactive run log.
type ConsolePresenter struct {
	out   io.Writer
	quiet bool
}

// NewConsolePresenter creates a presenter writing to stdout
func NewConsolePresenter(quiet bool) *ConsolePresenter {
	return &ConsolePresenter{out: os.Stdout, quiet: quiet}
}

func (p *ConsolePresenter) ImageStarted(img types.LocalImage) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "In Progress: %s\n", img.RelativePath)
}

func (p *ConsolePresenter) TagsExtracted(img types.LocalImage, tags []string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Success: Extracted %d tag(s)\n", len(tags))
}

func (p *ConsolePresenter) ExtractFailed(img types.LocalImage, err error) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Failed: Could not read tags (%v)\n", err)
}

func (p *ConsolePresenter) NoTags(img types.LocalImage) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Failed: No tags found\n")
}

func (p *ConsolePresenter) Resolved(img types.LocalImage, matches []*types.RemoteFile) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Success: Found %d matching file(s) in Google Drive\n", len(matches))
}

func (p *ConsolePresenter) NoRemoteMatch(img types.LocalImage) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Failed: No matching file found in Google Drive\n")
}

func (p *ConsolePresenter) ItemQueued(img types.LocalImage, file *types.RemoteFile) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\t --> Success: %s added to batch\n", file.Name)
}

func (p *ConsolePresenter) BatchStarted(itemCount int) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\nExecuting batch update (%d item(s))\n", itemCount)
}

func (p *ConsolePresenter) OutcomeReceived(outcome types.UpdateOutcome) {
	if p.quiet {
		return
	}
	if outcome.Updated() {
		fmt.Fprintf(p.out, "+ Updated: %s\n", outcome.Name)
	} else {
		fmt.Fprintf(p.out, "- Error: %s: %v\n", outcome.LocalPath, outcome.Err)
	}
}

// Summary prints a table of batch outcomes and returns the failure count
func (p *ConsolePresenter) Summary(outcomes []types.UpdateOutcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.Updated() {
			failed++
		}
	}

	if p.quiet || len(outcomes) == 0 {
		return failed
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Remote File", "Status", "Detail"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		name := o.Name
		status := "updated"
		detail := ""
		if !o.Updated() {
			name = o.LocalPath
			status = "failed"
			detail = o.Err.Error()
		}
		table.Append([]string{name, status, detail})
	}

	fmt.Fprintln(p.out)
	table.Render()
	fmt.Fprintf(p.out, "\n%d updated, %d failed\n", len(outcomes)-failed, failed)
	return failed
}
