package contactssvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListQueryComposesTagAndSearch(t *testing.T) {
	tagOID := primitive.NewObjectID()

	got := ListQuery(tagOID.Hex(), "acme").ToBson()
	want := bson.M{"$and": bson.A{
		bson.M{"tagIds": tagOID},
		bson.M{"name": bson.M{"$regex": "acme", "$options": "i"}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListQuery render sai: %v", got)
	}
}

func TestListQueryEmptyArgsMatchesAll(t *testing.T) {
	got := ListQuery("", "").ToBson()
	if !reflect.DeepEqual(got, bson.M{}) {
		t.Errorf("không có filter phải match tất cả: %v", got)
	}
}

func TestListQueryEscapesRegexMeta(t *testing.T) {
	got := ListQuery("", "a.c*me").ToBson()
	want := bson.M{"name": bson.M{"$regex": `a\.c\*me`, "$options": "i"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("từ khóa chứa ký tự regex phải được escape: %v", got)
	}
}
