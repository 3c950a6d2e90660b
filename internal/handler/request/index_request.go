package request

// CreateIndexBatchRequest submits URLs for indexing.
type CreateIndexBatchRequest struct {
	URLs []string `json:"urls" binding:"required,min=1,max=1000"`
}
