package postgres

const (
	defaultLimit = 20
	maxLimit     = 100
)

// clampPage нормализует page/limit и возвращает offset/limit для запроса.
func clampPage(page, limit int) (offset, lim int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}

	return (page - 1) * limit, limit
}
