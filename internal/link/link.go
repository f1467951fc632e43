// Package link はリモート情報からコミットやファイル行へのリンクを組み立てます。
package link

import (
	"fmt"
	"strings"

	"github.com/phyten/what2do/internal/gitremote"
)

// Blob はコミット SHA とファイルパス、行番号から GitHub 互換の blob URL を生成します。
// Markdown はレンダリングされると行アンカーが効かないため ?plain=1 を付けます。
func Blob(info gitremote.Info, sha, file string, line int) string {
	if sha == "" || file == "" || line <= 0 {
		return ""
	}
	base := info.WebURL()
	path := gitremote.BlobPath(file)
	if isMarkdown(file) {
		return fmt.Sprintf("%s/blob/%s/%s?plain=1#L%d", base, sha, path, line)
	}
	return fmt.Sprintf("%s/blob/%s/%s#L%d", base, sha, path, line)
}

// Commit はコミット詳細ページの URL を返します。
func Commit(info gitremote.Info, sha string) string {
	if sha == "" {
		return ""
	}
	return fmt.Sprintf("%s/commit/%s", info.WebURL(), sha)
}

func isMarkdown(file string) bool {
	lower := strings.ToLower(file)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
