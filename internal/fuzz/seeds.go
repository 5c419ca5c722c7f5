package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var inlineSeeds = []string{
	"",
	"@hello = \"facts\";\n",
	"#!/usr/bin/env ember\n@limit u32 :: 3;\nfun main(a b, c d) u32 {}\n",
	"@c : 'x';\n@s :: \"tab\\there\";\n",
	"func f() u8 {}",
	"@a = 1 $;\n@b = \"open\n",
	"fun (",
	"@n = 99999999999999999999999;",
	"// only a comment",
	"@x u32 = -(1 + 2) * 3 << 4 ^^ !y;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	// проходим по testdata, добавляем все *.em файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".em" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) > limit {
		src = src[:limit]
	}
	return append([]byte(nil), src...)
}
