package main

const usage = `what2do - list TODO/FIXME style markers in source trees

Usage:
  what2do [scan] [PATH...] [flags]
  what2do history [flags] FILE

Flags and paths may be mixed. Repeatable flags also accept comma separated
values (--ext go,py). Arguments after "--" are always paths.

Scan flags:
  --ext EXT              only scan files with this extension (repeatable)
  --lang LANG            only scan files detected as LANG (go, python, js, ...; repeatable)
  --exclude PATTERN      gitignore-style pattern to skip (repeatable)
  --tags TAG             marker tags to report (default TODO,FIXME,XXX,HACK)
  --comments-only        only report markers inside comments
  --exclude-typical      skip vendor/, node_modules/, dist/, build/, target/, *.min.*
  --hidden               include dotfiles and dot-directories (.git is always skipped)
  --follow-symlinks      descend into symlinked directories
  --no-gitignore         ignore the root .gitignore
  --max-file-bytes N     skip files larger than N bytes (0 = unlimited)

Report flags:
  --format FORMAT        text|grouped|table|tsv|csv|json|ndjson|markdown (default text)
  --out FILE             write the report to FILE (.md implies markdown, otherwise tsv)
  --fields LIST          columns for table/tsv/csv (file,line,column,location,tag,
                         owner,message,text,context,scope,lang,modified)
  --color MODE           auto|always|never (default auto)
  --truncate N           clip table messages to N columns (0 = unlimited)

General:
  --config FILE          config file (default: .what2do.* found upwards, then
                         $XDG_CONFIG_HOME/what2do/config.*, then ~/.what2do.*)
  -v, --verbose          debug logging on stderr
  -q, --quiet            errors only; no summary
  --progress             show scan progress on stderr even when piped
  --no-progress          never show scan progress
  -h, --help             show this help

Environment:
  WHAT2DO_CONFIG, WHAT2DO_PATH, WHAT2DO_EXT, WHAT2DO_EXCLUDE, WHAT2DO_TAGS,
  WHAT2DO_COMMENTS_ONLY, WHAT2DO_EXCLUDE_TYPICAL, WHAT2DO_HIDDEN,
  WHAT2DO_FOLLOW_SYMLINKS, WHAT2DO_NO_GITIGNORE, WHAT2DO_MAX_FILE_BYTES,
  WHAT2DO_FORMAT, WHAT2DO_OUT, WHAT2DO_COLOR, WHAT2DO_TRUNCATE

Exit status:
  0  no markers found
  1  markers found
  2  fatal error (missing path, invalid flags or config)
`

const historyUsage = `what2do history - show when markers were added or removed in a file

Usage:
  what2do history [flags] FILE

Flags:
  --format FORMAT        text|markdown (default text)
  --remote NAME          git remote used for commit links (default origin)
  --tags TAG             marker tags to track (repeatable)
  --comments-only        only track markers inside comments
  --open                 open the newest listed commit in a browser
  -v, --verbose          debug logging on stderr
  -q, --quiet            errors only
  -h, --help             show this help
`
