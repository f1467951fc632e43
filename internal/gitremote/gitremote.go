// Package gitremote は Git リモート URL を解析し、ブラウズ用のベース URL を組み立てます。
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/what2do/internal/execx"
)

// Info は Git リモートから抽出したホスト・オーナー・リポジトリ情報です。
type Info struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// Detect は repoDir のリモート remote (空なら origin) を解析して Info を返します。
func Detect(ctx context.Context, runner execx.Runner, repoDir, remote string) (Info, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = "origin"
	}
	key := "remote." + remote + ".url"
	out, err := execx.Output(ctx, runner, repoDir, "git", "config", "--get", key)
	if err != nil {
		return Info{}, fmt.Errorf("git config %s: %w", key, err)
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	return Parse(raw)
}

// Parse は remote.<name>.url の値を解析します。
// scp 形式 ([user@]host:owner/repo.git) と ssh/git/http/https の URL 形式に対応します。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, errors.New("empty remote url")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote url: %w", err)
		}
		scheme := strings.ToLower(u.Scheme)
		switch scheme {
		case "ssh", "git", "git+ssh", "http", "https":
		default:
			return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
		}
		cleaned, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote path: %w", err)
		}
		owner, repo, err := splitPath(cleaned)
		if err != nil {
			return Info{}, err
		}
		info := Info{Host: strings.ToLower(u.Host), Owner: owner, Repo: repo}
		if scheme == "http" || scheme == "https" {
			info.Scheme = scheme
		} else {
			// ssh のポートは Web UI とは無関係
			info.Host = strings.ToLower(u.Hostname())
		}
		return info, nil
	}
	// scp 形式: git@github.com:owner/repo.git
	hostPart, pathPart, ok := strings.Cut(raw, ":")
	if !ok || hostPart == "" {
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	if at := strings.LastIndex(hostPart, "@"); at >= 0 {
		hostPart = hostPart[at+1:]
	}
	owner, repo, err := splitPath(pathPart)
	if err != nil {
		return Info{}, err
	}
	return Info{Host: strings.ToLower(strings.TrimSpace(hostPart)), Owner: owner, Repo: repo}, nil
}

func splitPath(p string) (string, string, error) {
	cleaned := strings.TrimSpace(p)
	cleaned = strings.TrimSuffix(cleaned, "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	cleaned = strings.Trim(cleaned, "/")
	if cleaned == "" {
		return "", "", errors.New("missing owner/repo in remote url")
	}
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// WebURL はリポジトリのブラウズ用ベース URL を返します。
func (i Info) WebURL() string {
	host := strings.TrimSuffix(i.Host, "/")
	return fmt.Sprintf("%s://%s/%s/%s", i.NormalizedScheme(), host, url.PathEscape(i.Owner), url.PathEscape(i.Repo))
}

// BlobPath はファイルパスを URL 用にエスケープします。
func BlobPath(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return path.Join(parts...)
}

// NormalizedScheme はリンク生成に利用するスキームを返します。
// http のリモートだけ http を保ち、それ以外は https を既定とします。
func (i Info) NormalizedScheme() string {
	if strings.EqualFold(strings.TrimSpace(i.Scheme), "http") {
		return "http"
	}
	return "https"
}
