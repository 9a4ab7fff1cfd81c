package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item represents a catalog item document. The identifier is assigned by the
// store on insert and never changes afterwards. Prices are stored as trimmed
// strings; numeric request input is coerced before it gets here.
type Item struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ItemName     string             `bson:"itemName" json:"itemName"`
	ItemCategory string             `bson:"itemCategory" json:"itemCategory"`
	ItemPrice    string             `bson:"itemPrice" json:"itemPrice"`
	Status       string             `bson:"status" json:"status"`
}

// ItemStatusActive is the default status for newly created items.
const ItemStatusActive = "ACTIVE"
