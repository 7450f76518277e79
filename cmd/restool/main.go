package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Plastique812375255/FUKMKD/internal/restool/app"
	"github.com/Plastique812375255/FUKMKD/internal/restool/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	if len(cfg.Archives) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
