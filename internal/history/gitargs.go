package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// git expands %x00 to NUL, which cannot occur in names or subjects
const sep = "\x00"

const logFormat = "--format=%x00%H%x00%an%x00%ae%x00%at%x00%s"

func rootArgs() []string {
	return []string{"rev-parse", "--show-toplevel"}
}

func logArgs(path string) []string {
	return []string{"log", "--follow", "--name-status", logFormat, "--", path}
}

func showArgs(hash, path string) []string {
	return []string{"show", hash + ":" + path}
}

// parseLog reads `git log --follow --name-status` output (newest first) and
// records for every commit the path the file had in that commit.
func parseLog(out, path string) ([]Commit, error) {
	var commits []Commit
	current := -1
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimRight(raw, "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, sep) {
			parts := strings.SplitN(line[len(sep):], sep, 5)
			if len(parts) != 5 {
				return nil, fmt.Errorf("unexpected git log line: %q", strings.ReplaceAll(line, sep, "|"))
			}
			ts, err := strconv.ParseInt(parts[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid commit timestamp %q: %w", parts[3], err)
			}
			commits = append(commits, Commit{
				Hash:    parts[0],
				Author:  parts[1],
				Email:   parts[2],
				Date:    time.Unix(ts, 0),
				Subject: parts[4],
				Path:    path,
			})
			current = len(commits) - 1
			continue
		}
		if current < 0 {
			continue
		}
		// name-status: "M\tpath", "R100\told\tnew", "D\tpath"
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		c := &commits[current]
		c.Status = fields[0][:1]
		c.Path = fields[len(fields)-1]
		if c.Status == "R" || c.Status == "C" {
			// older commits see the file under its previous name
			path = fields[1]
		}
	}
	return commits, nil
}
