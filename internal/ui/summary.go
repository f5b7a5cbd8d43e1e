package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dosanma1/forge-native/internal/tree"
)

// PrintActions writes one line per staged action, e.g.
//
//	CREATE src/main.tns.ts (312 bytes)
//	RENAME src/main.ts => src/main.web.ts
func PrintActions(w io.Writer, actions []tree.Action) {
	for _, a := range actions {
		label := actionStyle(a.Kind).Render(fmt.Sprintf("%-6s", a.Kind))
		switch a.Kind {
		case tree.ActionRename:
			fmt.Fprintf(w, "%s %s => %s\n", label, a.Path, a.To)
		case tree.ActionDelete:
			fmt.Fprintf(w, "%s %s\n", label, a.Path)
		default:
			fmt.Fprintf(w, "%s %s (%d bytes)\n", label, a.Path, len(a.Content))
		}
	}
}

// PrintResult closes a run: nothing to do, a dry-run notice, or success.
func PrintResult(w io.Writer, actions []tree.Action, dryRun bool) {
	switch {
	case len(actions) == 0:
		fmt.Fprintln(w, HelpStyle.Render("Nothing to be done."))
	case dryRun:
		fmt.Fprintln(w, WarningStyle.Render(IconWarning+" Dry run: no changes were written."))
	default:
		fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("%s %d change(s) written.", IconSuccess, len(actions))))
	}
}

func actionStyle(k tree.ActionKind) lipgloss.Style {
	switch k {
	case tree.ActionCreate:
		return CreateStyle
	case tree.ActionRename:
		return RenameStyle
	case tree.ActionDelete:
		return DeleteStyle
	default:
		return UpdateStyle
	}
}
