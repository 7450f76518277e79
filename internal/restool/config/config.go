// Package config はrestoolコマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	ListMode    bool
	ExtractMode bool
	OutputDir   string
	WriteCSV    bool
	Target      string
	Replacement string
	BatchConfig string
	Identifier  uint
	HasIdent    bool
	Backup      bool
	Force       bool
	SkipEmpty   bool
	ExtractAll  bool
	Parallel    bool
	Workers     int
	DebugMode   bool
	ShowVersion bool
	Archives    []string
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s: [options] <res file or directory> [...]\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  -l\tlist entries")
		fmt.Fprintln(flag.CommandLine.Output(), "  -x\textract entries")
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for extracted files (default \"extracted\")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --csv")
		fmt.Fprintln(flag.CommandLine.Output(), "    \twrite a files_list CSV report into the output directory")
		fmt.Fprintln(flag.CommandLine.Output(), "  --target string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tentry name to replace (use with --with)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --with string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \treplacement file path (use with --target)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --batch string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tbatch replace using a CSV or JSON config file")
		fmt.Fprintln(flag.CommandLine.Output(), "  --identifier uint")
		fmt.Fprintln(flag.CommandLine.Output(), "    \texplicit identifier value for the replaced entry")
		fmt.Fprintln(flag.CommandLine.Output(), "  --backup")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tcreate a timestamped .bak copy before replacing")
		fmt.Fprintln(flag.CommandLine.Output(), "  --force")
		fmt.Fprintln(flag.CommandLine.Output(), "    \treplace even if the payload size differs")
		fmt.Fprintln(flag.CommandLine.Output(), "  --ignore-missing")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tskip entries that look empty when extracting")
		fmt.Fprintln(flag.CommandLine.Output(), "  --all")
		fmt.Fprintln(flag.CommandLine.Output(), "    \textract every entry, even suspected-empty ones")
		fmt.Fprintln(flag.CommandLine.Output(), "  -p\tprocess multiple archives in parallel")
		fmt.Fprintln(flag.CommandLine.Output(), "  -w int")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tnumber of worker threads for parallel processing (default 4)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	flag.BoolVar(&config.ListMode, "l", false, "list entries")
	flag.BoolVar(&config.ExtractMode, "x", false, "extract entries")
	flag.StringVar(&config.OutputDir, "o", "extracted", "output directory for extracted files")
	flag.BoolVar(&config.WriteCSV, "csv", false, "write a files_list CSV report into the output directory")

	flag.StringVar(&config.Target, "target", "", "entry name to replace (use with --with)")
	flag.StringVar(&config.Replacement, "with", "", "replacement file path (use with --target)")
	flag.StringVar(&config.BatchConfig, "batch", "", "batch replace using a CSV or JSON config file")
	flag.UintVar(&config.Identifier, "identifier", 0, "explicit identifier value for the replaced entry")
	flag.BoolVar(&config.Backup, "backup", false, "create a timestamped .bak copy before replacing")
	flag.BoolVar(&config.Force, "force", false, "replace even if the payload size differs")

	flag.BoolVar(&config.SkipEmpty, "ignore-missing", false, "skip entries that look empty when extracting")
	flag.BoolVar(&config.ExtractAll, "all", false, "extract every entry, even suspected-empty ones")

	flag.BoolVar(&config.Parallel, "p", false, "process multiple archives in parallel")
	flag.IntVar(&config.Workers, "w", 4, "number of worker threads for parallel processing")

	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	// --identifierが明示されたかどうかを記録
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "identifier" {
			config.HasIdent = true
		}
	})

	config.Archives = flag.Args()

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("restool version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
