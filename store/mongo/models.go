package mongo

import (
	"time"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
)

// itemDoc is the inventory item document. One flat document per item.
type itemDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	SKU         string    `bson:"sku"`
	Category    string    `bson:"category"`
	Quantity    int       `bson:"quantity"`
	Price       float64   `bson:"price"`
	Cost        float64   `bson:"cost"`
	Description string    `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func itemToDoc(item *inventory.Item) *itemDoc {
	return &itemDoc{
		ID:          item.ID.String(),
		Name:        item.Name,
		SKU:         item.SKU,
		Category:    item.Category,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Cost:        item.Cost,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func itemFromDoc(d *itemDoc) *inventory.Item {
	itemID, _ := id.ParseItemID(d.ID) //nolint:errcheck // stored IDs are always valid
	return &inventory.Item{
		ID:          itemID,
		Name:        d.Name,
		SKU:         d.SKU,
		Category:    d.Category,
		Quantity:    d.Quantity,
		Price:       d.Price,
		Cost:        d.Cost,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// lineDoc is one order line, embedded in its order document.
type lineDoc struct {
	ID          string  `bson:"id"`
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Quantity    int     `bson:"quantity"`
	Price       float64 `bson:"price"`
	Total       float64 `bson:"total"`
}

// orderDoc is the order document with its line sequence embedded directly,
// so no join is needed on read. Array order is insertion order.
type orderDoc struct {
	ID            string    `bson:"_id"`
	CustomerID    string    `bson:"customer_id,omitempty"`
	CustomerName  string    `bson:"customer_name"`
	CustomerEmail string    `bson:"customer_email,omitempty"`
	Items         []lineDoc `bson:"items"`
	Subtotal      float64   `bson:"subtotal"`
	Tax           float64   `bson:"tax"`
	Total         float64   `bson:"total"`
	Status        string    `bson:"status"`
	PaymentStatus string    `bson:"payment_status"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func linesToDocs(items []order.OrderItem) []lineDoc {
	docs := make([]lineDoc, len(items))
	for i, line := range items {
		docs[i] = lineDoc{
			ID:          line.ID.String(),
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Total:       line.Total,
		}
	}
	return docs
}

func linesFromDocs(docs []lineDoc) []order.OrderItem {
	items := make([]order.OrderItem, len(docs))
	for i, d := range docs {
		lineID, _ := id.ParseLineID(d.ID) //nolint:errcheck // stored IDs are always valid
		items[i] = order.OrderItem{
			ID:          lineID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			Price:       d.Price,
			Total:       d.Total,
		}
	}
	return items
}

func orderToDoc(o *order.Order) *orderDoc {
	return &orderDoc{
		ID:            o.ID.String(),
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         linesToDocs(o.Items),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func orderFromDoc(d *orderDoc) *order.Order {
	orderID, _ := id.ParseOrderID(d.ID) //nolint:errcheck // stored IDs are always valid
	return &order.Order{
		ID:            orderID,
		CustomerID:    d.CustomerID,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Items:         linesFromDocs(d.Items),
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Total:         d.Total,
		Status:        order.Status(d.Status),
		PaymentStatus: order.PaymentStatus(d.PaymentStatus),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}
