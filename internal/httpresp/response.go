// Package httpresp holds the success envelopes the JSON handlers share.
// Error envelopes live in httperr.
package httpresp

import "github.com/gin-gonic/gin"

// ListResponse wraps a collection with its length so the panel can
// paginate without counting client side.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// OK writes data as a plain 200 body.
func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

// List writes a 200 ListResponse around data.
func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
