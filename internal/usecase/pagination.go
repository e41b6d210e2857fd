package usecase

const (
	defaultLimit = 50
	maxLimit     = 100
)

// skip/limitの範囲チェック。limit=0は既定値。
func normalizePage(skip, limit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, NewValidationError("skip must be >= 0")
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > maxLimit {
		return 0, 0, NewValidationError("limit must be between 1 and 100")
	}
	return skip, limit, nil
}
