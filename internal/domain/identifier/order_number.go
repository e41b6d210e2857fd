package identifier

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const OrderNumberPrefix = "ORD-"

// 注文番号を作る約束（テストでは固定値を差し込む）
type OrderNumberGenerator interface {
	NewOrderNumber() string
}

// UUIDの先頭8桁（16進・大文字）を使う。
// 生成時に重複チェックはしない。最終的な一意性はDBのunique制約。
type RandomOrderNumberGenerator struct {
	newUUID func() uuid.UUID
}

func NewRandomOrderNumberGenerator() *RandomOrderNumberGenerator {
	return &RandomOrderNumberGenerator{newUUID: uuid.New}
}

// 乱数源を差し替える
func NewOrderNumberGeneratorFrom(src func() uuid.UUID) *RandomOrderNumberGenerator {
	return &RandomOrderNumberGenerator{newUUID: src}
}

func (g *RandomOrderNumberGenerator) NewOrderNumber() string {
	id := g.newUUID()
	return OrderNumberPrefix + strings.ToUpper(hex.EncodeToString(id[:4]))
}
