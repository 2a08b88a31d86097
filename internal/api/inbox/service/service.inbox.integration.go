package inboxsvc

import (
	"fmt"

	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// IntegrationService là cấu trúc chứa các phương thức liên quan đến integration
type IntegrationService struct {
	*basesvc.BaseServiceMongoImpl[models.Integration]
}

// NewIntegrationService tạo mới IntegrationService
func NewIntegrationService() (*IntegrationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Integrations)
	if !exist {
		return nil, fmt.Errorf("failed to get integrations collection: %v", common.ErrNotFound)
	}
	return &IntegrationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Integration](coll),
	}, nil
}
