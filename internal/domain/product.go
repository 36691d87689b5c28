package domain

import "time"

// ProductType описывает категорию товара в каталоге.
type ProductType string

const (
	// ProductTypeBook — бумажная книга, для неё доступно обогащение из библиотеки.
	ProductTypeBook ProductType = "book"
	// ProductTypeDigitalBook — электронная книга.
	ProductTypeDigitalBook ProductType = "digital_book"
	// ProductTypePhysicalGood — прочий физический товар.
	ProductTypePhysicalGood ProductType = "physical_good"
	// ProductTypeDigitalGood — прочий цифровой товар.
	ProductTypeDigitalGood ProductType = "digital_good"
)

// ProductTypes перечисляет все допустимые значения в фиксированном порядке.
func ProductTypes() []ProductType {
	return []ProductType{
		ProductTypeBook,
		ProductTypeDigitalBook,
		ProductTypePhysicalGood,
		ProductTypeDigitalGood,
	}
}

// IsValid сообщает, входит ли значение в множество допустимых типов.
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeBook, ProductTypeDigitalBook, ProductTypePhysicalGood, ProductTypeDigitalGood:
		return true
	default:
		return false
	}
}

// Product — каноническая запись каталога.
type Product struct {
	// ID назначается один раз при создании и никогда не переназначается.
	ID string
	// Title — обязательное название товара.
	Title string
	// Description — опциональное описание; пустая строка означает отсутствие.
	Description string
	// PriceMinor — цена в минимальных денежных единицах (копейки/центы),
	// то есть ровно два дробных знака.
	PriceMinor int64
	// Type — категория товара.
	Type ProductType
	// LibraryBookID — явная опциональная ссылка на запись внешней библиотеки.
	// nil означает, что обогащение для товара недоступно.
	LibraryBookID *int64
	// CreatedAt фиксируется при создании и больше не меняется.
	CreatedAt time.Time
	// UpdatedAt обновляется при каждой мутации.
	UpdatedAt time.Time
}
