package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreSQL    = "sql"
)

// AnonymousUser is the learner id used when a request carries no token.
const AnonymousUser = "anonymous"

const (
	MimeMarkdown = "text/markdown; charset=utf-8"
)
