package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Extraction report (info for extract, debug inside batch)
		"Processing: %s":                   "処理中: %s",
		"Resolution: %dx%d":                "解像度: %dx%d",
		"Duration: %.2f seconds":           "長さ: %.2f 秒",
		"Original FPS: %.2f":               "元のFPS: %.2f",
		"Extract every %d frames (%g FPS)": "%d フレームごとに抽出 (%g FPS)",
		"Frame range: %d to %s":            "フレーム範囲: %d から %s",
		"Output format: %s":                "出力形式: %s",
		"Quality: %d":                      "品質: %d",
		"Extraction complete!":             "抽出が完了しました",
		"Frames saved: %d":                 "保存したフレーム数: %d",
		"Output directory: %s":             "出力ディレクトリ: %s",
		"Metadata saved: %s":               "メタデータを保存しました: %s",

		// Extractor warnings and debug lines
		"Frame rate of %s is unknown; start and end times are ignored": "%s のフレームレートが不明なため、開始・終了時刻は無視されます",
		"Failed to save debug output: %v":                              "デバッグ出力の保存に失敗しました: %v",
		"Saved %d frames of %s":                                        "%[2]s から %[1]d フレームを保存しました",
		"Close %s: %v":                                                 "%s のクローズ: %v",

		// Progress descriptions
		"Extracting frames": "フレーム抽出中",
		"Overall progress":  "全体の進捗",

		// Batch
		"Processing %d videos sequentially...":               "%d 本の動画を順番に処理中...",
		"Processing %d videos in parallel with %d workers...": "%d 本の動画を %d ワーカーで並列処理中...",
		"Panic while processing %s: %v":                      "%s の処理中にパニックが発生しました: %v",
		"Extracting %s into %s":                              "%s を %s に抽出中",
		"Failed %s: %v":                                      "%s が失敗しました: %v",
		"Skipping %s: %s is already the output directory of %s": "%[1]s をスキップします: %[2]s はすでに %[3]s の出力ディレクトリです",

		// Video sources
		"Opening %s with %s backend":                         "%s を %s バックエンドで開いています",
		"MP4 probe failed for %s, falling back to ffprobe: %v": "%s のMP4解析に失敗したため ffprobe を使用します: %v",

		// Batch summary
		"BATCH PROCESSING SUMMARY": "バッチ処理サマリー",
		"Successful: %d/%d":        "成功: %d/%d",
		"%s: %d frames":            "%s: %d フレーム",
		"Failed: %d/%d":            "失敗: %d/%d",

		// Command level messages
		"Interrupted, shutting down...":       "中断されました。シャットダウン中...",
		"Scanning for video files in: %s":     "動画ファイルを検索中: %s",
		"Found %d video file(s)":              "%d 件の動画ファイルが見つかりました",
		"No video files found in: %s":         "動画ファイルが見つかりません: %s",
		"Input directory not found: %s":       "入力ディレクトリが見つかりません: %s",
		"Video file not found: %s":            "動画ファイルが見つかりません: %s",
		"Processing settings:":                "処理設定:",
		"Summary saved to: %s":                "サマリーを保存しました: %s",
		"Extraction failed: %v":               "抽出に失敗しました: %v",
		"Using configuration file %s":         "設定ファイル %s を使用します",
		"ffmpeg was not found; install it or set --ffmpeg-path": "ffmpeg が見つかりません。インストールするか --ffmpeg-path を指定してください",
	})
}
