package utils

// Find 按ID查找对应的数据。
// 如果ids为空则返回all，
// 不存在的ID记录到失败列表中，结果顺序与ids一致。
func Find[K comparable, T any](dataMap map[K]T, all []T, ids []K) (okData []T, failedIDs []K) {
	if len(ids) == 0 {
		return all, nil
	}
	okData = make([]T, 0, len(ids))
	for _, id := range ids {
		if d, ok := dataMap[id]; ok {
			okData = append(okData, d)
		} else {
			failedIDs = append(failedIDs, id)
		}
	}
	return
}
