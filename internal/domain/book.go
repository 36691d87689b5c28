package domain

// BookRecord — запись внешней библиографической системы, только для чтения.
type BookRecord struct {
	ID     int64
	Title  string
	Author string
	Year   int32
}
