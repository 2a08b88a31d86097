// Package contactssvc chứa logic nghiệp vụ của domain contacts.
package contactssvc

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/Alond/erxes-api/internal/api/base/models"
	basequery "github.com/Alond/erxes-api/internal/api/base/query"
	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/contacts/models"
	inboxmodels "github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxsvc "github.com/Alond/erxes-api/internal/api/inbox/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// CompanyService là cấu trúc chứa các phương thức liên quan đến công ty
type CompanyService struct {
	*basesvc.BaseServiceMongoImpl[models.Company]
	tagService *inboxsvc.TagService
}

// NewCompanyService tạo mới CompanyService
func NewCompanyService() (*CompanyService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Companies)
	if !exist {
		return nil, fmt.Errorf("failed to get companies collection: %v", common.ErrNotFound)
	}

	tagService, err := inboxsvc.NewTagService()
	if err != nil {
		return nil, err
	}

	return &CompanyService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Company](coll),
		tagService:           tagService,
	}, nil
}

// ListQuery build filter danh sách công ty từ tag và từ khóa tìm kiếm.
// Filter được compose qua predicate algebra như mọi truy vấn khác.
func ListQuery(tagID, search string) basequery.Predicate {
	preds := make([]basequery.Predicate, 0, 2)
	if tagID != "" {
		preds = append(preds, basequery.FieldEquals{Field: "tagIds", Value: tagID})
	}
	if search != "" {
		preds = append(preds, basequery.FieldRegex{
			Field:   "name",
			Pattern: regexp.QuoteMeta(search),
			Options: "i",
		})
	}
	return basequery.NewAnd(preds...)
}

// List trả về trang công ty theo tag và từ khóa tìm kiếm
func (s *CompanyService) List(ctx context.Context, tagID, search string, page, limit int64) (*basemodels.PaginateResult[models.Company], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, ListQuery(tagID, search).ToBson(), page, limit, opts)
}

// CountsByTags đếm công ty theo từng tag trong phân vùng company.
// Mỗi tag hiện có một entry, kể cả khi đếm ra 0.
func (s *CompanyService) CountsByTags(ctx context.Context) (basemodels.FacetCounts, error) {
	tagIDs, err := s.tagService.TagIDsByType(ctx, inboxmodels.TagTypeCompany)
	if err != nil {
		return nil, err
	}

	counts := make(basemodels.FacetCounts, len(tagIDs))
	for _, tagID := range tagIDs {
		filter := basequery.FieldEquals{Field: "tagIds", Value: tagID}.ToBson()
		n, err := s.CountDocuments(ctx, filter)
		if err != nil {
			return nil, err
		}
		counts[tagID] = n
	}
	return counts, nil
}
