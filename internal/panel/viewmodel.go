// Package panel turns the shared selection into one debounced, deduplicated,
// last-request-wins fetch stream per display panel, published as view-models.
package panel

import "encoding/json"

// ViewModel is the renderable state of one panel. Data survives both loading
// and failure, so a stale value may sit next to a fresh Error.
type ViewModel[T any] struct {
	Loading bool
	Error   string
	Data    *T
}

// HasError reports whether the last fetch failed.
func (v ViewModel[T]) HasError() bool { return v.Error != "" }

// MarshalJSON renders {"loading":..,"error":..,"data":..} with null for no
// error or no data.
func (v ViewModel[T]) MarshalJSON() ([]byte, error) {
	var errField *string
	if v.Error != "" {
		errField = &v.Error
	}
	return json.Marshal(struct {
		Loading bool    `json:"loading"`
		Error   *string `json:"error"`
		Data    *T      `json:"data"`
	}{v.Loading, errField, v.Data})
}
