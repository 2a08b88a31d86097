// Package models chứa các kiểu kết quả dùng chung cho layer service (phân trang, đếm).
package models

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại
	Limit     int64 `json:"limit" bson:"limit"`         // Số lượng mục trên mỗi trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số lượng mục trong trang hiện tại
	Items     []T   `json:"items" bson:"items"`         // Danh sách các mục
	Total     int64 `json:"total" bson:"total"`         // Tổng số mục
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Tổng số trang
}

// CountResult đại diện cho kết quả đếm theo filter
type CountResult struct {
	TotalCount int64 `json:"totalCount" bson:"totalCount"` // Tổng số lượng mục
	Limit      int64 `json:"limit" bson:"limit"`           // Số lượng mục trên mỗi trang
	TotalPage  int64 `json:"totalPage" bson:"totalPage"`   // Tổng số trang
}

// FacetCounts đại diện cho kết quả đếm theo từng giá trị của một chiều lọc
// (channel, brand, tag, ...). Key là ID của giá trị, value là số lượng.
type FacetCounts map[string]int64
