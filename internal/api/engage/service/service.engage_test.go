package engagesvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alond/erxes-api/internal/api/engage/models"
)

func TestStatusFilterMapping(t *testing.T) {
	viewer := primitive.NewObjectID()

	cases := []struct {
		status string
		want   bson.M
	}{
		{models.EngageStatusLive, bson.M{"isLive": true}},
		{models.EngageStatusDraft, bson.M{"isDraft": true}},
		{models.EngageStatusPaused, bson.M{"isLive": false}},
		{models.EngageStatusYours, bson.M{"fromUserId": viewer}},
	}

	for _, tc := range cases {
		got := statusFilter(tc.status, viewer)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("statusFilter(%s) = %v, muốn %v", tc.status, got, tc.want)
		}
	}
}

func TestStatusFilterUnknownMatchesNothing(t *testing.T) {
	got := statusFilter("bogus", primitive.NewObjectID())
	want := bson.M{"_id": bson.M{"$in": bson.A{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trạng thái lạ phải cho filter không match gì: %v", got)
	}
}
