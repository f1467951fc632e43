package engine

import (
	"github.com/phyten/what2do/internal/model"
	"github.com/phyten/what2do/internal/progress"
)

// ItemError は 1 ファイル (または 1 行) の処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Stage values used in ItemError.
const (
	StageWalk   = "walk"
	StageRead   = "read"
	StageDecode = "decode"
	StageSize   = "size"
)

// Options は走査オプション
type Options struct {
	Roots          []string
	Extensions     []string
	// Langs keeps only files detected as one of these languages (detect names).
	Langs          []string
	Excludes       []string
	Tags           []string
	CommentsOnly   bool
	ExcludeTypical bool
	Hidden         bool
	FollowSymlinks bool
	UseGitignore   bool
	MaxFileBytes   int
	// Progress が nil でなければファイルごとの進捗を通知する
	Progress       progress.Observer
}

// Result は走査結果。Findings は発見順 (ファイル順、行の昇順) に並ぶ
type Result struct {
	Findings   []model.Finding `json:"findings"`
	Files      int             `json:"files"`
	Total      int             `json:"total"`
	ElapsedMS  int64           `json:"elapsed_ms"`
	Errors     []ItemError     `json:"errors,omitempty"`
	ErrorCount int             `json:"error_count"`
}

// FilesWithFindings は 1 件以上の発見があったファイル数を返す
func (r *Result) FilesWithFindings() int {
	if r == nil {
		return 0
	}
	n := 0
	last := ""
	for i, f := range r.Findings {
		if i == 0 || f.File != last {
			n++
			last = f.File
		}
	}
	return n
}

// RootNotFoundError は指定されたルートが存在しない場合に返される
type RootNotFoundError struct {
	Path string
	Err  error
}

func (e *RootNotFoundError) Error() string {
	return "root not found: " + e.Path
}

func (e *RootNotFoundError) Unwrap() error {
	return e.Err
}
