package identifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
)

// Slugify は表示名からURL用のslugを作る（純関数）。
//
//	"Café  Table!!" -> "caf-table"
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// n番目の候補。0ならbaseそのまま、以降は base-1, base-2 ...
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// slugが使用済みか調べる
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// ResolveSlug は base, base-1, base-2 ... を順に試し、未使用の最初の候補を返す。
// 確認と保存の間は原子的ではないので、保存時のunique違反は呼び出し側で扱う。
func ResolveSlug(ctx context.Context, base string, exists SlugExistsFunc) (string, error) {
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := SlugCandidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
