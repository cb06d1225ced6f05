package models

// UncategorizedMCC is the fallback code stored when monobank reports an MCC
// that is not present in the local taxonomy.
const UncategorizedMCC = -1

// MCC is one row of the merchant category taxonomy, pointing a provider
// code at a local category.
type MCC struct {
	Code       int `json:"code" db:"code"`
	CategoryID int `json:"category_id" db:"category_id"`
}
