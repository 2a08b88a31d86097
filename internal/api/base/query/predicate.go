// Package basequery cung cấp đại số vị từ (predicate algebra) để build
// các filter MongoDB một cách có cấu trúc thay vì thao tác bson.M trực tiếp.
//
// Mỗi Predicate là một node trong cây điều kiện; ToBson() render cây
// thành filter bson.M tương đương. Hai phần tử đặc biệt:
//   - MatchAll: phần tử trung hòa của And (match mọi document)
//   - MatchNone: phần tử hấp thụ của And (không match document nào)
package basequery

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Predicate là một điều kiện lọc có thể render thành filter MongoDB.
type Predicate interface {
	// ToBson render predicate thành filter bson.M
	ToBson() bson.M
}

// MatchAll match mọi document. Đây là phần tử trung hòa của And:
// And(MatchAll, p) tương đương p.
type MatchAll struct{}

func (MatchAll) ToBson() bson.M {
	return bson.M{}
}

// MatchNone không match document nào. Đây là phần tử hấp thụ của And:
// And(MatchNone, p) tương đương MatchNone.
//
// Render thành {"_id": {"$in": []}} — một filter hợp lệ với mọi collection
// và được server đánh giá là false cho mọi document.
type MatchNone struct{}

func (MatchNone) ToBson() bson.M {
	return bson.M{"_id": bson.M{"$in": bson.A{}}}
}

// isIDField nhận biết field chứa ObjectID theo quy ước đặt tên (_id, xxxId, xxxIds)
func isIDField(field string) bool {
	if field == "_id" {
		return true
	}
	lower := strings.ToLower(field)
	return strings.HasSuffix(lower, "id") || strings.HasSuffix(lower, "ids")
}

// normalizeIDValue chuyển hex string hợp lệ thành ObjectID cho các field ID,
// vì document lưu ObjectID còn predicate nhận giá trị dạng string.
func normalizeIDValue(field string, v interface{}) interface{} {
	s, ok := v.(string)
	if !ok || !isIDField(field) || !primitive.IsValidObjectID(s) {
		return v
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return v
	}
	return oid
}

// FieldEquals match các document có field bằng đúng giá trị.
type FieldEquals struct {
	Field string
	Value interface{}
}

func (p FieldEquals) ToBson() bson.M {
	return bson.M{p.Field: normalizeIDValue(p.Field, p.Value)}
}

// FieldIn match các document có field nằm trong tập giá trị.
// Tập rỗng match không document nào (đúng ngữ nghĩa $in của MongoDB).
type FieldIn struct {
	Field  string
	Values []string
}

func (p FieldIn) ToBson() bson.M {
	values := make(bson.A, len(p.Values))
	for i, v := range p.Values {
		values[i] = normalizeIDValue(p.Field, v)
	}
	return bson.M{p.Field: bson.M{"$in": values}}
}

// FieldNotEquals match các document có field khác giá trị
// (bao gồm cả document không có field đó, theo ngữ nghĩa $ne).
type FieldNotEquals struct {
	Field string
	Value interface{}
}

func (p FieldNotEquals) ToBson() bson.M {
	return bson.M{p.Field: bson.M{"$ne": normalizeIDValue(p.Field, p.Value)}}
}

// FieldExists match theo sự tồn tại của field.
type FieldExists struct {
	Field  string
	Exists bool
}

func (p FieldExists) ToBson() bson.M {
	return bson.M{p.Field: bson.M{"$exists": p.Exists}}
}

// FieldRegex match field theo regular expression.
type FieldRegex struct {
	Field   string
	Pattern string
	Options string // ví dụ "i" cho case-insensitive
}

func (p FieldRegex) ToBson() bson.M {
	regex := bson.M{"$regex": p.Pattern}
	if p.Options != "" {
		regex["$options"] = p.Options
	}
	return bson.M{p.Field: regex}
}

// And là hội của các predicate con.
type And struct {
	Preds []Predicate
}

func (p And) ToBson() bson.M {
	switch len(p.Preds) {
	case 0:
		return bson.M{}
	case 1:
		return p.Preds[0].ToBson()
	}

	clauses := make(bson.A, 0, len(p.Preds))
	for _, pred := range p.Preds {
		clauses = append(clauses, pred.ToBson())
	}
	return bson.M{"$and": clauses}
}

// Or là tuyển của các predicate con. Tuyển rỗng match không document nào.
type Or struct {
	Preds []Predicate
}

func (p Or) ToBson() bson.M {
	if len(p.Preds) == 0 {
		return MatchNone{}.ToBson()
	}
	if len(p.Preds) == 1 {
		return p.Preds[0].ToBson()
	}

	clauses := make(bson.A, 0, len(p.Preds))
	for _, pred := range p.Preds {
		clauses = append(clauses, pred.ToBson())
	}
	return bson.M{"$or": clauses}
}

// NewAnd tạo hội của các predicate với rút gọn đại số:
//   - MatchAll bị loại bỏ (phần tử trung hòa)
//   - gặp MatchNone thì toàn bộ hội sụp về MatchNone (phần tử hấp thụ)
//   - hội rỗng sau rút gọn trả về MatchAll
//   - hội một phần tử trả về chính phần tử đó
func NewAnd(preds ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p == nil {
			continue
		}
		switch p.(type) {
		case MatchAll:
			continue
		case MatchNone:
			return MatchNone{}
		}
		kept = append(kept, p)
	}

	switch len(kept) {
	case 0:
		return MatchAll{}
	case 1:
		return kept[0]
	}
	return And{Preds: kept}
}

// NewOr tạo tuyển của các predicate, bỏ qua nil và MatchNone.
// Gặp MatchAll thì toàn bộ tuyển sụp về MatchAll.
func NewOr(preds ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p == nil {
			continue
		}
		switch p.(type) {
		case MatchNone:
			continue
		case MatchAll:
			return MatchAll{}
		}
		kept = append(kept, p)
	}

	switch len(kept) {
	case 0:
		return MatchNone{}
	case 1:
		return kept[0]
	}
	return Or{Preds: kept}
}

// IntersectIn giao hai ràng buộc $in trên cùng một field.
// Toán hạng nil nghĩa là "không ràng buộc" — trả về toán hạng còn lại.
// Giao rỗng giữa hai tập không rỗng trả về MatchNone, không bao giờ
// nới rộng thành "không ràng buộc".
func IntersectIn(a, b *FieldIn) Predicate {
	if a == nil && b == nil {
		return MatchAll{}
	}
	if a == nil {
		return *b
	}
	if b == nil {
		return *a
	}

	inB := make(map[string]struct{}, len(b.Values))
	for _, v := range b.Values {
		inB[v] = struct{}{}
	}

	intersection := make([]string, 0, len(a.Values))
	seen := make(map[string]struct{}, len(a.Values))
	for _, v := range a.Values {
		if _, ok := inB[v]; !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		intersection = append(intersection, v)
	}

	if len(intersection) == 0 {
		return MatchNone{}
	}
	return FieldIn{Field: a.Field, Values: intersection}
}
