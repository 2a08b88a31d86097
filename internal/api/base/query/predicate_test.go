package basequery

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMatchNoneToBson(t *testing.T) {
	got := MatchNone{}.ToBson()
	want := bson.M{"_id": bson.M{"$in": bson.A{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchNone.ToBson() = %v, muốn %v", got, want)
	}
}

func TestFieldInEmptyValues(t *testing.T) {
	// Tập rỗng phải render thành $in với mảng rỗng (match không document nào),
	// không được render thành filter rỗng
	got := FieldIn{Field: "integrationId", Values: nil}.ToBson()
	want := bson.M{"integrationId": bson.M{"$in": bson.A{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldIn rỗng render sai: %v", got)
	}
}

func TestNewAndDropsMatchAll(t *testing.T) {
	p := NewAnd(MatchAll{}, FieldEquals{Field: "status", Value: "open"}, MatchAll{})
	if _, ok := p.(FieldEquals); !ok {
		t.Fatalf("NewAnd phải rút gọn về FieldEquals, nhận được %T", p)
	}
}

func TestNewAndCollapsesOnMatchNone(t *testing.T) {
	p := NewAnd(
		FieldEquals{Field: "status", Value: "open"},
		MatchNone{},
		FieldIn{Field: "tagIds", Values: []string{"t1"}},
	)
	if _, ok := p.(MatchNone); !ok {
		t.Fatalf("NewAnd chứa MatchNone phải sụp về MatchNone, nhận được %T", p)
	}
}

func TestNewAndEmpty(t *testing.T) {
	p := NewAnd()
	if _, ok := p.(MatchAll); !ok {
		t.Fatalf("NewAnd rỗng phải trả về MatchAll, nhận được %T", p)
	}

	p = NewAnd(nil, MatchAll{})
	if _, ok := p.(MatchAll); !ok {
		t.Fatalf("NewAnd(nil, MatchAll) phải trả về MatchAll, nhận được %T", p)
	}
}

func TestNewAndMultiple(t *testing.T) {
	p := NewAnd(
		FieldEquals{Field: "status", Value: "open"},
		FieldIn{Field: "integrationId", Values: []string{"i1", "i2"}},
	)
	and, ok := p.(And)
	if !ok {
		t.Fatalf("muốn And, nhận được %T", p)
	}
	if len(and.Preds) != 2 {
		t.Errorf("muốn 2 predicate con, nhận được %d", len(and.Preds))
	}

	got := p.ToBson()
	clauses, ok := got["$and"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Errorf("render $and sai: %v", got)
	}
}

func TestNewOr(t *testing.T) {
	// Tuyển rỗng là MatchNone
	if _, ok := NewOr().(MatchNone); !ok {
		t.Error("NewOr rỗng phải trả về MatchNone")
	}

	// MatchAll hấp thụ
	if _, ok := NewOr(FieldEquals{Field: "a", Value: 1}, MatchAll{}).(MatchAll); !ok {
		t.Error("NewOr chứa MatchAll phải sụp về MatchAll")
	}

	// MatchNone bị loại bỏ
	p := NewOr(MatchNone{}, FieldEquals{Field: "a", Value: 1})
	if _, ok := p.(FieldEquals); !ok {
		t.Errorf("NewOr phải loại bỏ MatchNone, nhận được %T", p)
	}
}

func TestIntersectInBothNil(t *testing.T) {
	p := IntersectIn(nil, nil)
	if _, ok := p.(MatchAll); !ok {
		t.Fatalf("IntersectIn(nil, nil) phải là MatchAll (không ràng buộc), nhận được %T", p)
	}
}

func TestIntersectInOneNil(t *testing.T) {
	// nil nghĩa là "không ràng buộc", phải trả về toán hạng còn lại nguyên vẹn
	in := &FieldIn{Field: "integrationId", Values: []string{"i1", "i2"}}

	p := IntersectIn(nil, in)
	got, ok := p.(FieldIn)
	if !ok {
		t.Fatalf("muốn FieldIn, nhận được %T", p)
	}
	if !reflect.DeepEqual(got.Values, []string{"i1", "i2"}) {
		t.Errorf("giá trị bị thay đổi: %v", got.Values)
	}

	p = IntersectIn(in, nil)
	if _, ok := p.(FieldIn); !ok {
		t.Fatalf("muốn FieldIn, nhận được %T", p)
	}
}

func TestIntersectInEmptyResult(t *testing.T) {
	// Giao rỗng giữa hai tập không rỗng phải là MatchNone,
	// tuyệt đối không được nới rộng thành "không ràng buộc"
	a := &FieldIn{Field: "integrationId", Values: []string{"i1", "i2"}}
	b := &FieldIn{Field: "integrationId", Values: []string{"i3"}}

	p := IntersectIn(a, b)
	if _, ok := p.(MatchNone); !ok {
		t.Fatalf("giao rỗng phải là MatchNone, nhận được %T", p)
	}
}

func TestIntersectInOverlap(t *testing.T) {
	a := &FieldIn{Field: "integrationId", Values: []string{"i1", "i2", "i3"}}
	b := &FieldIn{Field: "integrationId", Values: []string{"i2", "i3", "i4"}}

	p := IntersectIn(a, b)
	got, ok := p.(FieldIn)
	if !ok {
		t.Fatalf("muốn FieldIn, nhận được %T", p)
	}
	if !reflect.DeepEqual(got.Values, []string{"i2", "i3"}) {
		t.Errorf("giao sai: %v", got.Values)
	}
}

func TestIntersectInDeduplicates(t *testing.T) {
	a := &FieldIn{Field: "integrationId", Values: []string{"i1", "i1", "i2"}}
	b := &FieldIn{Field: "integrationId", Values: []string{"i1", "i2"}}

	p := IntersectIn(a, b)
	got := p.(FieldIn)
	if !reflect.DeepEqual(got.Values, []string{"i1", "i2"}) {
		t.Errorf("giao phải loại trùng lặp: %v", got.Values)
	}
}

func TestFieldRegexOptions(t *testing.T) {
	got := FieldRegex{Field: "name", Pattern: "acme", Options: "i"}.ToBson()
	want := bson.M{"name": bson.M{"$regex": "acme", "$options": "i"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldRegex render sai: %v", got)
	}

	got = FieldRegex{Field: "name", Pattern: "acme"}.ToBson()
	want = bson.M{"name": bson.M{"$regex": "acme"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldRegex không options render sai: %v", got)
	}
}

func TestFieldInNormalizesObjectIDHex(t *testing.T) {
	// Field ID nhận hex string hợp lệ phải được chuyển thành ObjectID
	// vì document lưu ObjectID chứ không phải string
	hex := "507f1f77bcf86cd799439011"
	oid, _ := primitive.ObjectIDFromHex(hex)

	got := FieldIn{Field: "integrationId", Values: []string{hex}}.ToBson()
	want := bson.M{"integrationId": bson.M{"$in": bson.A{oid}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldIn không normalize hex thành ObjectID: %v", got)
	}

	// Field không phải ID thì giữ nguyên string, kể cả khi là hex hợp lệ
	got = FieldEquals{Field: "status", Value: "open"}.ToBson()
	want = bson.M{"status": "open"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldEquals thay đổi giá trị không phải ID: %v", got)
	}
}

func TestFieldExists(t *testing.T) {
	got := FieldExists{Field: "assignedUserId", Exists: false}.ToBson()
	want := bson.M{"assignedUserId": bson.M{"$exists": false}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldExists render sai: %v", got)
	}
}
