package domain

// AdminStats are raw entity counts.
type AdminStats struct {
	UsersCount      int64 `json:"users_count"`
	QuotesCount     int64 `json:"quotes_count"`
	CategoriesCount int64 `json:"categories_count"`
	MessagesCount   int64 `json:"messages_count"`
}

// ReconcileReport lists how many rows had a drifted counter rewritten.
type ReconcileReport struct {
	QuotesRepaired     int64 `json:"quotes_repaired"`
	UsersRepaired      int64 `json:"users_repaired"`
	CategoriesRepaired int64 `json:"categories_repaired"`
}

// Total returns the number of repaired rows.
func (r ReconcileReport) Total() int64 {
	return r.QuotesRepaired + r.UsersRepaired + r.CategoriesRepaired
}
