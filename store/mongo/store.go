// Package mongo implements the composite store on a MongoDB database.
// Each entity gets one collection; order lines are embedded in their order
// document. Filters and sorts are evaluated server-side.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

// Collection name constants.
const (
	colInventory = "inventory"
	colOrders    = "orders"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a MongoDB implementation of the composite store.
type Store struct {
	client *mongod.Client
	db     *mongod.Database
}

// Open connects to the MongoDB deployment at uri and returns a store over
// the named database.
func Open(uri, database string) (*Store, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("stockroom/mongo: connect: %w", err)
	}
	return New(client, database), nil
}

// New wraps an already connected client.
func New(client *mongod.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Migrate creates indexes for the stockroom collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()
	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("stockroom/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the database.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all collections.
func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colInventory: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "quantity", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
}

// ──────────────────────────────────────────────────
// Inventory operations
// ──────────────────────────────────────────────────

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) (id.ItemID, error) {
	itemID := id.NewItemID()
	t := now()
	item.ID = itemID
	item.CreatedAt = t
	item.UpdatedAt = t
	if _, err := s.db.Collection(colInventory).InsertOne(ctx, itemToDoc(item)); err != nil {
		return id.Nil, fmt.Errorf("stockroom: create item: %w", err)
	}
	return itemID, nil
}

func (s *Store) GetItem(ctx context.Context, itemID id.ItemID) (*inventory.Item, error) {
	var d itemDoc
	err := s.db.Collection(colInventory).
		FindOne(ctx, bson.M{"_id": itemID.String()}).
		Decode(&d)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stockroom: get item: %w", err)
	}
	return itemFromDoc(&d), nil
}

func (s *Store) UpdateItem(ctx context.Context, itemID id.ItemID, patch *inventory.Patch) (bool, error) {
	set := bson.M{"updated_at": now()}
	if patch != nil {
		if patch.Name != nil {
			set["name"] = *patch.Name
		}
		if patch.SKU != nil {
			set["sku"] = *patch.SKU
		}
		if patch.Category != nil {
			set["category"] = *patch.Category
		}
		if patch.Quantity != nil {
			set["quantity"] = *patch.Quantity
		}
		if patch.Price != nil {
			set["price"] = *patch.Price
		}
		if patch.Cost != nil {
			set["cost"] = *patch.Cost
		}
		if patch.Description != nil {
			set["description"] = *patch.Description
		}
	}

	res, err := s.db.Collection(colInventory).
		UpdateOne(ctx, bson.M{"_id": itemID.String()}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("stockroom: update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	return res.MatchedCount == 1, nil
}

func (s *Store) DeleteItem(ctx context.Context, itemID id.ItemID) (bool, error) {
	res, err := s.db.Collection(colInventory).
		DeleteOne(ctx, bson.M{"_id": itemID.String()})
	if err != nil {
		return false, fmt.Errorf("stockroom: delete item: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	return s.listItems(ctx, bson.M{})
}

func (s *Store) ListItemsByCategory(ctx context.Context, category string) ([]*inventory.Item, error) {
	return s.listItems(ctx, bson.M{"category": category})
}

func (s *Store) ListLowStockItems(ctx context.Context, threshold int) ([]*inventory.Item, error) {
	return s.listItems(ctx, bson.M{"quantity": bson.M{"$lt": threshold}})
}

func (s *Store) listItems(ctx context.Context, filter bson.M) ([]*inventory.Item, error) {
	cur, err := s.db.Collection(colInventory).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("stockroom: list items: %w", err)
	}
	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("stockroom: list items: %w", err)
	}
	items := make([]*inventory.Item, len(docs))
	for i := range docs {
		items[i] = itemFromDoc(&docs[i])
	}
	return items, nil
}

// ──────────────────────────────────────────────────
// Order operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) (id.OrderID, error) {
	orderID := id.NewOrderID()
	t := now()
	o.ID = orderID
	o.CreatedAt = t
	o.UpdatedAt = t
	for i := range o.Items {
		o.Items[i].ID = id.NewLineID()
	}
	if _, err := s.db.Collection(colOrders).InsertOne(ctx, orderToDoc(o)); err != nil {
		return id.Nil, fmt.Errorf("stockroom: create order: %w", err)
	}
	return orderID, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	var d orderDoc
	err := s.db.Collection(colOrders).
		FindOne(ctx, bson.M{"_id": orderID.String()}).
		Decode(&d)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stockroom: get order: %w", err)
	}
	return orderFromDoc(&d), nil
}

func (s *Store) UpdateOrder(ctx context.Context, orderID id.OrderID, patch *order.Patch) (bool, error) {
	set := bson.M{"updated_at": now()}
	if patch != nil {
		if patch.CustomerID != nil {
			set["customer_id"] = *patch.CustomerID
		}
		if patch.CustomerName != nil {
			set["customer_name"] = *patch.CustomerName
		}
		if patch.CustomerEmail != nil {
			set["customer_email"] = *patch.CustomerEmail
		}
		if patch.Subtotal != nil {
			set["subtotal"] = *patch.Subtotal
		}
		if patch.Tax != nil {
			set["tax"] = *patch.Tax
		}
		if patch.Total != nil {
			set["total"] = *patch.Total
		}
		if patch.Status != nil {
			set["status"] = string(*patch.Status)
		}
		if patch.PaymentStatus != nil {
			set["payment_status"] = string(*patch.PaymentStatus)
		}
		if patch.Items != nil {
			for i := range patch.Items {
				patch.Items[i].ID = id.NewLineID()
			}
			set["items"] = linesToDocs(patch.Items)
		}
	}

	res, err := s.db.Collection(colOrders).
		UpdateOne(ctx, bson.M{"_id": orderID.String()}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("order %s: %w", orderID, store.ErrNotFound)
	}
	return res.MatchedCount == 1, nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID id.OrderID) (bool, error) {
	res, err := s.db.Collection(colOrders).
		DeleteOne(ctx, bson.M{"_id": orderID.String()})
	if err != nil {
		return false, fmt.Errorf("stockroom: delete order: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]*order.Order, error) {
	return s.listOrders(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *Store) ListRecentOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.listOrders(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)))
}

func (s *Store) ListOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return s.listOrders(ctx, bson.M{"status": string(status)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *Store) listOrders(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]*order.Order, error) {
	cur, err := s.db.Collection(colOrders).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("stockroom: list orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("stockroom: list orders: %w", err)
	}
	orders := make([]*order.Order, len(docs))
	for i := range docs {
		orders[i] = orderFromDoc(&docs[i])
	}
	return orders, nil
}
