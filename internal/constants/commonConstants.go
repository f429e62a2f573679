package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CacheKeyIdeaList CachePrefix = "IDEAS_LIST"
	CacheIdeaListTTL             = 30 // seconds
)
