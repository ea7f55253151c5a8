package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

var (
	baseStyle   = lipgloss.NewStyle().Bold(true)
	ownedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mergeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	remoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	shaStyle    = lipgloss.NewStyle().Faint(true)
)

// Status renders the classified WIP state of the repository: per base, the
// local WIP branches, the merge-tracking branch, and every remote's view.
func Status(ctx context.Context, rc *runtime.Context) (string, error) {
	snap, err := wip.Snapshot(ctx, rc.Git, rc.RemoteFilter)
	if err != nil {
		return "", err
	}

	bases := wip.Bases(snap)
	if len(bases) == 0 {
		return "No wip branches. Run 'git-wip save' to checkpoint your work.\n", nil
	}

	current, _ := rc.Git.CurrentBranch(ctx)

	var b strings.Builder
	for _, base := range bases {
		fmt.Fprintln(&b, baseStyle.Render(base))

		for _, ref := range wip.LocalWipRefs(snap, base) {
			marker := " "
			if ref.BranchName() == current {
				marker = "*"
			}
			fmt.Fprintf(&b, " %s %s %s\n", marker, ownedStyle.Render(ref.BranchName()), shaStyle.Render(short(ref.SHA)))
		}

		mergeRef := "refs/heads/" + wip.MergeTracking(base).BranchName()
		if sha, ok, _ := rc.Git.GetRef(ctx, mergeRef); ok {
			fmt.Fprintf(&b, "   %s %s\n", mergeStyle.Render(wip.MergeTracking(base).BranchName()), shaStyle.Render(short(sha)))
		}

		for _, ref := range wip.RemoteWipRefs(snap, base) {
			fmt.Fprintf(&b, "   %s %s\n", remoteStyle.Render(ref.Remote+"/"+ref.BranchName()), shaStyle.Render(short(ref.SHA)))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func short(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
