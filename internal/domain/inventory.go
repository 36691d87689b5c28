package domain

// PhysicalInventory — складская запись физического товара.
// Ключом служит productId из каталога; строка существует, если товар
// существовал в момент записи. Дальнейшая согласованность не поддерживается.
type PhysicalInventory struct {
	ProductID string
	Stock     int32
	Location  string
}

// DigitalInventory — запись цифрового товара.
// Инвариант licensesSold <= licensesTotal сознательно НЕ проверяется:
// текущее поведение его не гарантирует, и молча добавлять проверку нельзя.
type DigitalInventory struct {
	ProductID     string
	DigitalFile   string
	LicensesTotal int32
	LicensesSold  int32
}
