package persistence

// Allowed sort fields per entity. Anything outside the whitelist falls
// back to the repository's default ordering.

var organizationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
	"status":     true,
}

var userSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

var unitSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"symbol":            true,
	"conversion_factor": true,
}

var productSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"sku":            true,
	"stock":          true,
	"reorder_level":  true,
	"purchase_price": true,
	"sale_price":     true,
}

var partnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
	"email":      true,
}

var purchaseSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"receipt_number": true,
	"vendor_name":    true,
	"purchase_date":  true,
	"total":          true,
}

var saleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"client_name":    true,
	"sale_date":      true,
	"total":          true,
}

var productionOrderSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"order_number":      true,
	"output_name":       true,
	"production_date":   true,
	"status":            true,
	"quantity_produced": true,
}
