package kafka

import "time"

// OperationType определяет тип операции над товаром для платёжного сервиса.
type OperationType string

const (
	OperationAdd    OperationType = "ADD"
	OperationUpdate OperationType = "UPDATE"
	OperationRemove OperationType = "REMOVE"
)

// Topics для Kafka.
const (
	// TopicProductPaymentSync — синхронизация товаров в платёжный сервис.
	TopicProductPaymentSync = "product_created_create_product_in_payment_service"
	// TopicInventoryEvents — события списаний инвентаря.
	TopicInventoryEvents = "catalog.inventory.events"
)

// ProductPaymentSyncEvent повторяет контракт платёжного сервиса: минимум
// полей товара плюс тип операции.
type ProductPaymentSyncEvent struct {
	ProductID     string        `json:"product_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	OperationType OperationType `json:"operation_type"`
}

// InventoryDeductedEvent — уведомление об успешном батчевом списании.
type InventoryDeductedEvent struct {
	Deductions map[string]int `json:"deductions"`
	Timestamp  time.Time      `json:"timestamp"`
}

// NewProductPaymentSyncEvent собирает событие синхронизации по полям товара.
func NewProductPaymentSyncEvent(productID, title, description string, price float64, op OperationType) *ProductPaymentSyncEvent {
	return &ProductPaymentSyncEvent{
		ProductID:     productID,
		Title:         title,
		Description:   description,
		Price:         price,
		OperationType: op,
	}
}

// NewInventoryDeductedEvent собирает событие списания по применённому батчу.
func NewInventoryDeductedEvent(deductions map[string]int) *InventoryDeductedEvent {
	return &InventoryDeductedEvent{
		Deductions: deductions,
		Timestamp:  time.Now(),
	}
}
