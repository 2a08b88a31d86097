package utility

// UniqueStrings loại bỏ phần tử trùng lặp trong mảng chuỗi, giữ nguyên thứ tự.
func UniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// ContainsString kiểm tra mảng chuỗi có chứa phần tử hay không
func ContainsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
