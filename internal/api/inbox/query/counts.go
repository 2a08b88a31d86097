package inboxquery

import (
	"context"

	"golang.org/x/sync/errgroup"

	basemodels "github.com/Alond/erxes-api/internal/api/base/models"
	basequery "github.com/Alond/erxes-api/internal/api/base/query"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
)

// ChannelRef là dữ liệu tối thiểu của một channel cần cho thống kê
type ChannelRef struct {
	ID             string
	IntegrationIDs []string
}

// Các khóa cố định trong kết quả thống kê
const (
	CountKeyUnassigned    = "unassigned"
	CountKeyParticipating = "participating"
	CountKeyStarred       = "starred"
	CountKeyResolved      = "resolved"
)

// CountEngine chạy các count query theo dimension với số lượng song song
// giới hạn. Bất kỳ count nào lỗi thì toàn bộ phép thống kê lỗi,
// không bao giờ trả về map thiếu một phần.
type CountEngine struct {
	counter Counter
	builder *Builder
	lookup  IntegrationLookup
	limit   int
}

// NewCountEngine tạo engine mới; limit <= 0 được chuẩn hóa về 1
func NewCountEngine(counter Counter, builder *Builder, lookup IntegrationLookup, limit int) *CountEngine {
	if limit <= 0 {
		limit = 1
	}
	return &CountEngine{
		counter: counter,
		builder: builder,
		lookup:  lookup,
		limit:   limit,
	}
}

// countJob là một count query có khóa trong map kết quả
type countJob struct {
	key  string
	pred basequery.Predicate
}

// run chạy các job song song có giới hạn. Lỗi của bất kỳ job nào hủy các job
// còn lại (qua context của errgroup) và trả về nil map.
func (e *CountEngine) run(ctx context.Context, jobs []countJob) (basemodels.FacetCounts, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	results := make([]int64, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			n, err := e.counter.CountConversations(ctx, job.pred.ToBson())
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(basemodels.FacetCounts, len(jobs))
	for i, job := range jobs {
		counts[job.key] = results[i]
	}
	return counts, nil
}

// CountByChannels đếm hội thoại match main query theo từng channel.
// Mỗi channel hiện có đều có một entry, kể cả khi đếm ra 0.
func (e *CountEngine) CountByChannels(ctx context.Context, channels []ChannelRef) (basemodels.FacetCounts, error) {
	main := e.builder.MainQuery()

	jobs := make([]countJob, 0, len(channels))
	for _, ch := range channels {
		jobs = append(jobs, countJob{
			key:  ch.ID,
			pred: basequery.NewAnd(main, *membershipOf(ch.IntegrationIDs)),
		})
	}
	return e.run(ctx, jobs)
}

// CountByIntegrationTypes đếm hội thoại match main query theo từng loại integration
func (e *CountEngine) CountByIntegrationTypes(ctx context.Context) (basemodels.FacetCounts, error) {
	main := e.builder.MainQuery()

	jobs := make([]countJob, 0, len(models.IntegrationKinds))
	for _, kind := range models.IntegrationKinds {
		ids, err := e.lookup.IntegrationIDsByKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, countJob{
			key:  kind,
			pred: basequery.NewAnd(main, *membershipOf(ids)),
		})
	}
	return e.run(ctx, jobs)
}

// CountByTags đếm hội thoại theo từng tag trên base hẹp hơn main query
// (chỉ integrations ∩ integrationType). tagIDs phải đã được giới hạn trong
// phân vùng tag của hội thoại; tag của phân vùng khác không bao giờ xuất hiện.
func (e *CountEngine) CountByTags(ctx context.Context, tagIDs []string) (basemodels.FacetCounts, error) {
	base := e.builder.TagCountBase()

	jobs := make([]countJob, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		jobs = append(jobs, countJob{
			key:  tagID,
			pred: basequery.NewAnd(base, TagFilter(tagID)),
		})
	}
	return e.run(ctx, jobs)
}

// CountByBrands đếm hội thoại theo từng brand trên base integrations
func (e *CountEngine) CountByBrands(ctx context.Context, brandIDs []string) (basemodels.FacetCounts, error) {
	base := e.builder.BrandCountBase()

	jobs := make([]countJob, 0, len(brandIDs))
	for _, brandID := range brandIDs {
		ids, err := e.lookup.IntegrationIDsByBrand(ctx, brandID)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, countJob{
			key:  brandID,
			pred: basequery.NewAnd(base, *membershipOf(ids)),
		})
	}
	return e.run(ctx, jobs)
}

// FixedCounts đếm các khóa cố định unassigned/participating/starred/resolved
// trên main query
func (e *CountEngine) FixedCounts(ctx context.Context) (basemodels.FacetCounts, error) {
	base := e.builder.FixedCountBase()

	jobs := []countJob{
		{key: CountKeyUnassigned, pred: basequery.NewAnd(base, UnassignedFilter())},
		{key: CountKeyParticipating, pred: basequery.NewAnd(base, ParticipatingFilter(e.builder.viewer.ID))},
		{key: CountKeyStarred, pred: basequery.NewAnd(base, StarredFilter(e.builder.viewer))},
		{key: CountKeyResolved, pred: basequery.NewAnd(base, ResolvedFilter())},
	}
	return e.run(ctx, jobs)
}

// UnreadCount đếm hội thoại chưa đọc của viewer theo shortcut,
// builder chỉ cần BuildFloor trước đó
func (e *CountEngine) UnreadCount(ctx context.Context) (int64, error) {
	return e.counter.CountConversations(ctx, e.builder.UnreadQuery().ToBson())
}
