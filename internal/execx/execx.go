// Package execx は外部コマンド (主に git) の実行を抽象化します。
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
type CommandRunner struct {
	// Env が nil でなければプロセス環境をこの値で置き換えます。
	Env []string
}

// Run は指定された作業ディレクトリでコマンドを実行し、標準出力・標準エラーを収集します。
func (r CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if r.Env != nil {
		cmd.Env = r.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandError はコマンドが失敗した際に標準エラーの内容を保持します。
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := e.Name
	if len(e.Args) > 0 {
		msg += " " + e.Args[0]
	}
	msg += ": " + e.Err.Error()
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Output は Runner でコマンドを実行し、失敗時は *CommandError を返します。
func Output(ctx context.Context, r Runner, dir, name string, args ...string) ([]byte, error) {
	if r == nil {
		r = DefaultRunner()
	}
	stdout, stderr, err := r.Run(ctx, dir, name, args...)
	if err != nil {
		return stdout, &CommandError{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return stdout, nil
}

// IsNotFound はコマンドが見つからない場合のエラーを判定します。
func IsNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// DefaultRunner は CommandRunner を返します。
func DefaultRunner() Runner {
	return CommandRunner{}
}
