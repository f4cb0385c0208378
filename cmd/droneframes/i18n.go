// Package main provides localization for the droneframes CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and output": "入出力",
		"Extraction":       "抽出設定",
		"Batch":            "バッチ",
		"Configuration":    "設定",
		"Logging":          "ログ",
		"Debug":            "デバッグ",

		// Commands
		"Extract still frames from drone videos for photogrammetry": "フォトグラメトリ用にドローン動画から静止画を抽出",
		"Extract frames from a single video":                        "1本の動画からフレームを抽出",
		"Extract frames from every video in a directory":            "ディレクトリ内のすべての動画からフレームを抽出",
		"Show version information":                                  "バージョン情報を表示",
		"droneframes version %s":                                    "droneframes バージョン %s",

		// Input and output flags
		"Input video file":                 "入力動画ファイル",
		"Output directory for frames":      "フレームの出力ディレクトリ",
		"Directory containing video files": "動画ファイルを含むディレクトリ",
		"Base output directory for frames": "フレームの出力先ベースディレクトリ",

		// Batch flags
		"Number of parallel workers":                    "並列ワーカー数",
		"Video file extensions to process (repeatable)": "処理する動画の拡張子（複数指定可）",

		// Extraction flags
		"Frames per second to extract":                 "抽出する1秒あたりのフレーム数",
		"Output format (jpg, jpeg, png)":               "出力形式（jpg, jpeg, png）",
		"Image quality 1-100":                          "画像品質 1-100",
		"Start time in seconds":                        "開始時刻（秒）",
		"End time in seconds (default: until the end)": "終了時刻（秒、デフォルト: 最後まで）",
		"Downscale so the longest side is at most this many pixels (0 = original)": "長辺がこのピクセル数以下になるよう縮小（0 = 元のサイズ）",

		// Configuration flags
		"YAML file with default settings": "デフォルト設定のYAMLファイル",
		"Path to the ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)": "ffmpeg 実行ファイルのパス（未指定時は FFMPEG_PATH 環境変数、次に PATH）",

		// Logging and debug flags
		"Log level (debug, info, warn, error)":          "ログレベル（debug, info, warn, error）",
		"Suppress log output and progress bars":         "ログ出力と進捗バーを抑制",
		"Save probe results and sampling plans as JSON": "解析結果とサンプリング計画をJSONで保存",
		"Directory for debug output (default: ./debug)": "デバッグ出力先ディレクトリ（デフォルト: ./debug）",
	})
}
