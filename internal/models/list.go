package models

// ListOptions is an offset/limit window over a collection.
type ListOptions struct {
	Skip  int64
	Limit int64
}
