package types

// State is a country subdivision as exposed by the filter endpoints.
type State struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// Country is a distinct country code present in the dataset.
type Country struct {
	Code string `db:"code" json:"code"`
}
