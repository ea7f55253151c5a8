// Package rebase implements the pure transform applied to an interactive
// rebase plan: keep or drop commits by id, preserving the original relative
// order of the kept commits.
package rebase

import (
	"sort"
	"strings"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
)

// Environment variables supplying the keep and drop commit sets when gitwip
// is invoked as the rebase sequence editor.
const (
	KeepCommitsEnv = "GIT_WIP_KEEP_COMMITS"
	DropCommitsEnv = "GIT_WIP_DROP_COMMITS"
)

// ParseCommitSet splits an environment value into commit ids.
// Entries may be separated by whitespace or commas.
func ParseCommitSet(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var ids []string
	for _, field := range fields {
		if field != "" {
			ids = append(ids, field)
		}
	}
	return ids
}

// matchSet finds the set entry naming the given commit id, tolerating
// abbreviated ids on either side.
func matchSet(sha string, set []string) (string, bool) {
	for _, entry := range set {
		if strings.HasPrefix(sha, entry) || strings.HasPrefix(entry, sha) {
			return entry, true
		}
	}
	return "", false
}

// FilterPlan rewrites the ordered commit ids of a proposed rebase plan,
// retaining exactly the "keep" commits in their original relative order.
// The union of keep and drop must equal the proposed set; anything else is a
// CommitSetMismatchError.
func FilterPlan(proposed []string, keep, drop []string) ([]string, error) {
	claimed := make(map[string]bool, len(keep)+len(drop))

	kept := make([]string, 0, len(proposed))
	var unclaimed []string
	for _, sha := range proposed {
		if entry, ok := matchSet(sha, keep); ok {
			claimed[entry] = true
			kept = append(kept, sha)
			continue
		}
		if entry, ok := matchSet(sha, drop); ok {
			claimed[entry] = true
			continue
		}
		unclaimed = append(unclaimed, sha)
	}

	var missing []string
	for _, entry := range append(append([]string{}, keep...), drop...) {
		if !claimed[entry] {
			missing = append(missing, entry)
		}
	}
	sort.Strings(missing)

	if len(unclaimed) > 0 || len(missing) > 0 {
		return nil, &gitwiperrors.CommitSetMismatchError{Unclaimed: unclaimed, Missing: missing}
	}
	return kept, nil
}

// commit-naming todo commands, per git-rebase-todo syntax
var commitCommands = map[string]bool{
	"pick": true, "p": true,
	"reword": true, "r": true,
	"edit": true, "e": true,
	"squash": true, "s": true,
	"fixup": true, "f": true,
	"drop": true, "d": true,
}

// RewriteTodo filters the content of a git-rebase-todo file. Lines naming
// commits in the drop set are removed; all other lines pass through
// unchanged. The proposed plan is the ordered set of commits the todo names.
func RewriteTodo(content string, keep, drop []string) (string, error) {
	lines := strings.Split(content, "\n")

	type todoLine struct {
		index int
		sha   string
	}
	var plan []todoLine
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 || !commitCommands[fields[0]] {
			continue
		}
		plan = append(plan, todoLine{index: i, sha: fields[1]})
	}

	proposed := make([]string, len(plan))
	for i, entry := range plan {
		proposed[i] = entry.sha
	}

	kept, err := FilterPlan(proposed, keep, drop)
	if err != nil {
		return "", err
	}

	keptSet := make(map[string]bool, len(kept))
	for _, sha := range kept {
		keptSet[sha] = true
	}

	var out []string
	planIdx := 0
	for i, line := range lines {
		if planIdx < len(plan) && plan[planIdx].index == i {
			if keptSet[plan[planIdx].sha] {
				out = append(out, line)
			}
			planIdx++
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), nil
}
