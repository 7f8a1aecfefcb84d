package repository

// Collection names in the document store
const (
	CollectionProducts   = "products"
	CollectionOrders     = "orders"
	CollectionUsers      = "users"
	CollectionCategories = "categories"
	CollectionSettings   = "settings"
	CollectionCounters   = "counters"
)
