// Package dto - các input DTO cho domain contacts.
package dto

// CompanyCreateInput dữ liệu đầu vào khi tạo công ty
type CompanyCreateInput struct {
	Name    string   `json:"name" validate:"required,min=1,max=200,no_xss"`
	Website string   `json:"website,omitempty" validate:"omitempty,max=200,no_xss"`
	Plan    string   `json:"plan,omitempty" validate:"omitempty,max=50,no_xss"`
	TagIDs  []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}

// CompanyUpdateInput dữ liệu đầu vào khi cập nhật công ty
type CompanyUpdateInput struct {
	Name    string   `json:"name,omitempty" validate:"omitempty,min=1,max=200,no_xss"`
	Website string   `json:"website,omitempty" validate:"omitempty,max=200,no_xss"`
	Plan    string   `json:"plan,omitempty" validate:"omitempty,max=50,no_xss"`
	TagIDs  []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}
